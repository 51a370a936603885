// Package repository реализует хранилище данных на основе PostgreSQL
// для записей о совершённых намазах. Предоставляет атомарный upsert по паре
// (user_id, date), точечные выборки и диапазонные запросы для календарных
// представлений.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrRecordNotFound возвращается при точечном чтении, когда записи
// на указанную пару (пользователь, дата) не существует.
var ErrRecordNotFound = errors.New("prayer record not found")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с записями о намазах.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'prayer_records'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table prayer_records missing or query error: %w", err)
	}
	return nil
}
