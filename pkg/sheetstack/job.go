package sheetstack

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/sheetstack-go/pkg/sheetstack/models"
	"gopkg.in/yaml.v3"
)

// Job describes an export in a YAML file.
type Job struct {
	// Output is the path of the workbook to write.
	Output string `yaml:"output"`
	// SheetName overrides the output sheet name.
	SheetName string `yaml:"sheet_name"`
	// ColumnWidth overrides the width of occupied columns.
	ColumnWidth float64 `yaml:"column_width"`
	// Concurrency overrides the decode concurrency.
	Concurrency int `yaml:"concurrency"`
	// ColumnOrder is "lexical" (default) or "numeric".
	ColumnOrder string `yaml:"column_order"`
	// Sources lists the sections, top to bottom.
	Sources []JobSource `yaml:"sources"`

	dir string
}

// JobSource is one section of a job. Exactly one of Rows, File and CSV is set.
type JobSource struct {
	Title string           `yaml:"title"`
	Rows  [][]models.Value `yaml:"rows"`
	File  string           `yaml:"file"`
	CSV   string           `yaml:"csv"`
}

// LoadJob reads a job file. Relative paths inside it are resolved against
// the directory holding the file.
func LoadJob(path string) (*Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	job, err := ParseJob(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	job.dir = filepath.Dir(path)
	return job, nil
}

// ParseJob parses a job from YAML.
func ParseJob(data []byte) (*Job, error) {
	var job Job
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	if len(job.Sources) == 0 {
		return nil, ErrNoSources
	}
	for i, src := range job.Sources {
		set := 0
		for _, ok := range []bool{src.Rows != nil, src.File != "", src.CSV != ""} {
			if ok {
				set++
			}
		}
		if set != 1 {
			return nil, fmt.Errorf("source %d: exactly one of rows, file or csv must be set", i)
		}
	}
	switch job.ColumnOrder {
	case "", "lexical", "numeric":
	default:
		return nil, fmt.Errorf("invalid column_order: %s (must be lexical or numeric)", job.ColumnOrder)
	}
	return &job, nil
}

// Apply overlays the settings of the job on opts.
func (j *Job) Apply(opts Options) Options {
	if j.SheetName != "" {
		opts.SheetName = j.SheetName
	}
	if j.ColumnWidth > 0 {
		opts.ColumnWidth = j.ColumnWidth
	}
	if j.Concurrency > 0 {
		opts.Concurrency = j.Concurrency
	}
	switch j.ColumnOrder {
	case "lexical":
		opts.ColumnOrder = models.ColumnOrderLexical
	case "numeric":
		opts.ColumnOrder = models.ColumnOrderNumeric
	}
	return opts
}

// OutputPath returns the output path resolved against the job directory.
func (j *Job) OutputPath() string {
	return j.resolve(j.Output)
}

// BuildSources converts the job sections into export sources. CSV files are
// read here; workbook files are read during the export.
func (j *Job) BuildSources() ([]Source, error) {
	sources := make([]Source, 0, len(j.Sources))
	for i, src := range j.Sources {
		switch {
		case src.File != "":
			sources = append(sources, BlobSourceOf(src.Title, File(j.resolve(src.File))))
		case src.CSV != "":
			rows, err := readCSV(j.resolve(src.CSV))
			if err != nil {
				return nil, NewSourceError(i, src.Title, err)
			}
			sources = append(sources, Source{Title: src.Title, Rows: rows})
		default:
			sources = append(sources, Source{Title: src.Title, Rows: src.Rows})
		}
	}
	return sources, nil
}

func (j *Job) resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || j.dir == "" {
		return path
	}
	return filepath.Join(j.dir, path)
}

// readCSV loads a CSV file as a table. Empty fields leave the cell unoccupied.
func readCSV(path string) ([][]models.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadFailure, err)
	}

	rows := make([][]models.Value, len(records))
	for i, rec := range records {
		row := make([]models.Value, len(rec))
		for c, field := range rec {
			if field != "" {
				row[c] = field
			}
		}
		rows[i] = row
	}
	return rows, nil
}
