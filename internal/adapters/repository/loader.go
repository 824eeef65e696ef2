package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/okian/paylens/internal/domain/model"
	"github.com/okian/paylens/pkg/logger"
	"github.com/okian/paylens/pkg/metrics"
)

const (
	defaultSourceName = "dataset"
	utf8BOM           = "\ufeff"
)

// columnIndex maps each required column to its position in the header.
type columnIndex struct {
	workYear, jobTitle, salary, size, location, level int
}

// LoadFile opens path and loads it with Load. The path becomes the source
// name unless WithSourceName overrides it.
func LoadFile(ctx context.Context, path string, opts ...Option) (*Store, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from trusted configuration
	if err != nil {
		metrics.RecordLoadError("load")
		return nil, &LoadError{Source: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	return Load(ctx, f, append([]Option{WithSourceName(path)}, opts...)...)
}

// Load parses a CSV stream with a header row into a Store.
// Any unreadable input, absent column or malformed cell aborts the load;
// rows are never skipped.
func Load(ctx context.Context, r io.Reader, opts ...Option) (*Store, error) {
	o := loadOptions{source: defaultSourceName, logger: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	records, err := parse(ctx, r, o.source)
	if err != nil {
		kind := "load"
		if errors.Is(err, ErrParse) {
			kind = "parse"
		}
		metrics.RecordLoadError(kind)
		o.logger.Error(ctx, "dataset load failed", logger.String("source", o.source), logger.Error(err))
		return nil, err
	}

	elapsed := time.Since(start)
	metrics.UpdateRecordsLoaded(len(records))
	metrics.RecordLoadDuration(float64(elapsed.Milliseconds()))
	o.logger.Info(ctx, "dataset loaded",
		logger.String("source", o.source),
		logger.Int("records", len(records)),
		logger.Duration("elapsed", elapsed),
	)

	return &Store{source: o.source, records: records}, nil
}

func parse(ctx context.Context, r io.Reader, source string) ([]model.Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &LoadError{Source: source, Err: errors.New("empty source: no header row")}
	}
	if err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("read header: %w", err)}
	}

	idx, err := indexColumns(header, source)
	if err != nil {
		return nil, err
	}

	var records []model.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, &LoadError{Source: source, Err: err}
		}

		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &LoadError{Source: source, Line: pe.Line, Err: pe.Err}
			}
			return nil, &LoadError{Source: source, Err: err}
		}

		line, _ := reader.FieldPos(0)
		rec, err := parseRow(row, idx, source, line)
		if err != nil {
			return nil, err
		}
		if err := rec.Validate(); err != nil {
			return nil, &LoadError{Source: source, Line: line, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

func indexColumns(header []string, source string) (columnIndex, error) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	for _, col := range model.Columns {
		if _, ok := pos[col]; !ok {
			return columnIndex{}, &LoadError{Source: source, Column: col, Err: ErrMissingColumn}
		}
	}

	return columnIndex{
		workYear: pos[string(model.FieldWorkYear)],
		jobTitle: pos[string(model.FieldJobTitle)],
		salary:   pos[model.ColumnSalaryInUSD],
		size:     pos[string(model.FieldCompanySize)],
		location: pos[string(model.FieldCompanyLocation)],
		level:    pos[string(model.FieldExperienceLevel)],
	}, nil
}

func parseRow(row []string, idx columnIndex, source string, line int) (model.Record, error) {
	text := func(i int, col string) (string, error) {
		v := strings.TrimSpace(row[i])
		if v == "" {
			return "", &LoadError{Source: source, Line: line, Column: col, Err: ErrMissingValue}
		}
		return v, nil
	}

	rawYear, err := text(idx.workYear, string(model.FieldWorkYear))
	if err != nil {
		return model.Record{}, err
	}
	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return model.Record{}, &ParseError{Source: source, Line: line, Column: string(model.FieldWorkYear), Value: rawYear, Err: ErrInvalidNumber}
	}

	rawSalary, err := text(idx.salary, model.ColumnSalaryInUSD)
	if err != nil {
		return model.Record{}, err
	}
	salary, err := strconv.ParseFloat(rawSalary, 64)
	if err != nil || salary < 0 || math.IsNaN(salary) || math.IsInf(salary, 0) {
		return model.Record{}, &ParseError{Source: source, Line: line, Column: model.ColumnSalaryInUSD, Value: rawSalary, Err: ErrInvalidNumber}
	}

	title, err := text(idx.jobTitle, string(model.FieldJobTitle))
	if err != nil {
		return model.Record{}, err
	}
	size, err := text(idx.size, string(model.FieldCompanySize))
	if err != nil {
		return model.Record{}, err
	}
	location, err := text(idx.location, string(model.FieldCompanyLocation))
	if err != nil {
		return model.Record{}, err
	}
	level, err := text(idx.level, string(model.FieldExperienceLevel))
	if err != nil {
		return model.Record{}, err
	}

	return model.Record{
		WorkYear:        year,
		JobTitle:        title,
		SalaryInUSD:     salary,
		CompanySize:     model.CompanySize(size),
		CompanyLocation: location,
		ExperienceLevel: model.ExperienceLevel(level),
	}, nil
}
