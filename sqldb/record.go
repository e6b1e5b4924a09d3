// sqldb/record.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sqldb

import (
	"strconv"
)

// Record is one result row; values are accessed by column name. Missing
// columns and NULLs read as zero values.
type Record struct {
	columns []string
	values  []any
	index   map[string]int
}

func NewRecord(columns []string, values []any) Record {
	r := Record{columns: columns, values: values, index: make(map[string]int, len(columns))}
	for i, c := range columns {
		if _, ok := r.index[c]; !ok {
			r.index[c] = i
		}
	}
	return r
}

func (r Record) IsEmpty() bool { return len(r.columns) == 0 }

func (r Record) Columns() []string { return r.columns }

func (r Record) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

func (r Record) Value(name string) any {
	if i, ok := r.index[name]; ok {
		return r.values[i]
	}
	return nil
}

func (r Record) IsNull(name string) bool {
	return r.Value(name) == nil
}

func (r Record) Int(name string) int {
	switch v := r.Value(name).(type) {
	case int64:
		return int(v)
	case int:
		return v
	case int32:
		return int(v)
	case float64:
		return int(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case []byte:
		n, _ := strconv.Atoi(string(v))
		return n
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

func (r Record) Float64(name string) float64 {
	switch v := r.Value(name).(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case []byte:
		f, _ := strconv.ParseFloat(string(v), 64)
		return f
	case string:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return 0
	}
}

func (r Record) Float(name string) float32 {
	return float32(r.Float64(name))
}

func (r Record) Bool(name string) bool {
	if v, ok := r.Value(name).(bool); ok {
		return v
	}
	return r.Int(name) != 0
}

func (r Record) String(name string) string {
	switch v := r.Value(name).(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

func (r Record) Bytes(name string) []byte {
	switch v := r.Value(name).(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return nil
	}
}
