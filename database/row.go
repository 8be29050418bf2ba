package database

// Row maps column names to values.
type Row map[string]any

// Collect reads every remaining row and closes rows. Byte slices are
// returned as strings.
func Collect(rows Rows) ([]Row, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	sb := scanPool.Get().(*scanBuffers)
	defer scanPool.Put(sb)

	out := []Row{}
	for rows.Next() {
		sb.prepare(len(columns))
		if err := rows.Scan(sb.ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			if b, ok := sb.vals[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = sb.vals[i]
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Var returns column from the first row.
func Var(rows []Row, column string) (any, bool) {
	if len(rows) == 0 {
		return nil, false
	}
	v, ok := rows[0][column]
	return v, ok
}
