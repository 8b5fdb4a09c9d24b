package sheetssql

import (
	"context"
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

var (
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// GetTableAs retrieves all rows from the table of T and maps them to structs
// Skips the first two rows (headers and types)
func GetTableAs[T any](ctx context.Context, db *DB) ([]T, error) {
	var model T
	t := reflect.TypeOf(model)
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("model must be a struct, got %s", t.Kind())
	}
	tableName := TableName(t)

	values, err := db.client.GetValues(ctx, db.spreadsheetID, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to get table %s: %w", tableName, err)
	}

	if len(values) < 3 {
		return []T{}, nil
	}
	headers := values[0]
	dataRows := values[2:]

	columnIndexes := make(map[string]int, len(headers))
	for i, header := range headers {
		if headerStr, ok := header.(string); ok {
			columnIndexes[headerStr] = i
		}
	}

	results := make([]T, 0, len(dataRows))
	for rowIdx, row := range dataRows {
		result := reflect.New(t).Elem()

		for i := 0; i < t.NumField(); i++ {
			columnName := t.Field(i).Tag.Get("ssql_header")
			colIdx, ok := columnIndexes[columnName]
			if columnName == "" || !ok || colIdx >= len(row) || row[colIdx] == nil {
				continue
			}

			if err := setFieldValue(result.Field(i), row[colIdx]); err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", rowIdx+3, columnName, err)
			}
		}

		results = append(results, result.Interface().(T))
	}

	return results, nil
}

// setFieldValue converts a sheet cell value to the appropriate Go type and sets it on the field
func setFieldValue(field reflect.Value, cellValue interface{}) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	cellStr, ok := cellValue.(string)
	if !ok {
		cellStr = fmt.Sprint(cellValue)
	}

	if field.Addr().Type().Implements(textUnmarshalerType) {
		if cellStr == "" {
			return nil
		}
		return field.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(cellStr))
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(cellStr)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if cellStr == "" {
			field.SetInt(0)
			return nil
		}
		intVal, err := strconv.ParseInt(cellStr, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int: %w", err)
		}
		field.SetInt(intVal)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if cellStr == "" {
			field.SetUint(0)
			return nil
		}
		uintVal, err := strconv.ParseUint(cellStr, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse uint: %w", err)
		}
		field.SetUint(uintVal)

	case reflect.Float32, reflect.Float64:
		if cellStr == "" {
			field.SetFloat(0)
			return nil
		}
		floatVal, err := strconv.ParseFloat(cellStr, 64)
		if err != nil {
			return fmt.Errorf("failed to parse float: %w", err)
		}
		field.SetFloat(floatVal)

	case reflect.Bool:
		if cellStr == "" {
			field.SetBool(false)
			return nil
		}
		boolVal, err := strconv.ParseBool(cellStr)
		if err != nil {
			return fmt.Errorf("failed to parse bool: %w", err)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// cellValue renders a field as the string stored in the sheet. Large
// integers such as seeds would lose precision as sheet numbers.
func cellValue(field reflect.Value) (string, error) {
	if field.Type().Implements(textMarshalerType) {
		text, err := field.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", err
		}
		return string(text), nil
	}

	switch field.Kind() {
	case reflect.String:
		return field.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(field.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(field.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(field.Float(), 'f', -1, 64), nil
	case reflect.Bool:
		return strconv.FormatBool(field.Bool()), nil
	default:
		return "", fmt.Errorf("unsupported field type: %s", field.Kind())
	}
}

// modelRow builds the sheet row of one model in column order
func modelRow(v reflect.Value) ([]interface{}, error) {
	t := v.Type()
	row := make([]interface{}, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("ssql_header") == "" {
			continue
		}

		cell, err := cellValue(v.Field(i))
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", field.Name, err)
		}
		row = append(row, cell)
	}
	return row, nil
}

// InsertModels appends multiple structs as rows to their corresponding table
func InsertModels[T any](ctx context.Context, db *DB, models []T) error {
	if len(models) == 0 {
		return nil
	}

	var model T
	tableName := TableName(reflect.TypeOf(model))

	rows := make([][]interface{}, 0, len(models))
	for i, m := range models {
		v := reflect.ValueOf(m)
		if v.Kind() == reflect.Ptr {
			v = v.Elem()
		}
		row, err := modelRow(v)
		if err != nil {
			return fmt.Errorf("%s[%d]: %w", tableName, i, err)
		}
		rows = append(rows, row)
	}

	return db.InsertRows(ctx, tableName, rows)
}
