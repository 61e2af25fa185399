package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"orders-api/internal/microservices/order/domain/dao"
)

var (
	ErrEmptyPatch      = errors.New("patch has no fields to update")
	ErrUnknownColumn   = errors.New("unknown orders column")
	ErrDuplicateColumn = errors.New("column set more than once")
)

var orderColumnSet = func() map[string]string {
	m := make(map[string]string, len(dao.OrderColumns))
	for _, c := range dao.OrderColumns {
		m[c] = c
	}
	return m
}()

// BuildPatch renders the SET list for a partial update. Column names come from
// the body, so only known orders columns (matched case-insensitively) pass;
// values are always bound. Columns are emitted in sorted order.
func BuildPatch(fields map[string]any) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, ErrEmptyPatch
	}

	byColumn := make(map[string]any, len(fields))
	for key, val := range fields {
		col, ok := orderColumnSet[strings.ToUpper(strings.TrimSpace(key))]
		if !ok {
			return "", nil, fmt.Errorf("%w: %q", ErrUnknownColumn, key)
		}
		if _, dup := byColumn[col]; dup {
			return "", nil, fmt.Errorf("%w: %s", ErrDuplicateColumn, col)
		}
		byColumn[col] = val
	}

	cols := make([]string, 0, len(byColumn))
	for col := range byColumn {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sets := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		sets[i] = col + " = ?"
		args[i] = byColumn[col]
	}
	return strings.Join(sets, ", "), args, nil
}
