// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import sq "github.com/Masterminds/squirrel"

const (
	localStorageTable = "local_storage"

	columnKey       = "key"
	columnValue     = "value"
	columnUpdatedAt = "updated_at"
)

// sqlite uses ? placeholders.
var sqlite = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func selectValueQuery(key string) (string, []any, error) {
	return sqlite.
		Select(columnValue).
		From(localStorageTable).
		Where(sq.Eq{columnKey: key}).
		ToSql()
}

func upsertValueQuery(key, value string, updatedAt int64) (string, []any, error) {
	return sqlite.
		Insert(localStorageTable).
		Columns(columnKey, columnValue, columnUpdatedAt).
		Values(key, value, updatedAt).
		Suffix("ON CONFLICT(" + columnKey + ") DO UPDATE SET " +
			columnValue + " = excluded." + columnValue + ", " +
			columnUpdatedAt + " = excluded." + columnUpdatedAt).
		ToSql()
}

func deleteValueQuery(key string) (string, []any, error) {
	return sqlite.
		Delete(localStorageTable).
		Where(sq.Eq{columnKey: key}).
		ToSql()
}
