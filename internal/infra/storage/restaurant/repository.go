package restaurant

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RestaurantService/internal/domain"
	"github.com/m04kA/SMC-RestaurantService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-RestaurantService/pkg/txmanager"
)

// Repository репозиторий для работы с ресторанами, городами и кухнями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория ресторанов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// restaurantColumns колонки выборки ресторана с JOIN города и кухни
var restaurantColumns = []string{
	"r.id",
	"r.name",
	"r.slug",
	"r.main_image",
	"r.price",
	"r.open_time",
	"r.close_time",
	"r.location_id",
	"r.cuisine_id",
	"l.name AS location_name",
	"c.name AS cuisine_name",
}

// GetBySlug получает ресторан по slug вместе с рабочими часами
// и полным списком столов (упорядочен по ID)
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*domain.Restaurant, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(restaurantColumns...).
		From("restaurants r").
		Join("locations l ON l.id = r.location_id").
		Join("cuisines c ON c.id = r.cuisine_id").
		Where(squirrel.Eq{"r.slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlug - build select query: %v", ErrBuildQuery, err)
	}

	rest, err := r.scanRestaurant(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlug - scan restaurant: %v", ErrScanRow, err)
	}

	tables, err := r.getTables(ctx, rest.ID)
	if err != nil {
		return nil, err
	}
	rest.Tables = tables

	return rest, nil
}

// Search получает рестораны по фильтру город/кухня/ценовая категория
// Все фильтры опциональны и комбинируются через AND
func (r *Repository) Search(ctx context.Context, filter domain.RestaurantFilter) ([]*domain.Restaurant, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(restaurantColumns...).
		From("restaurants r").
		Join("locations l ON l.id = r.location_id").
		Join("cuisines c ON c.id = r.cuisine_id")

	// Фильтрация по городу (регистронезависимо)
	if filter.City != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"l.name": strings.ToLower(*filter.City)})
	}

	// Фильтрация по кухне (регистронезависимо)
	if filter.Cuisine != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"c.name": strings.ToLower(*filter.Cuisine)})
	}

	// Фильтрация по ценовой категории
	if filter.Price != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.price": *filter.Price})
	}

	query, args, err := selectBuilder.OrderBy("r.name ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Search - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Search - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	restaurants := make([]*domain.Restaurant, 0)
	for rows.Next() {
		rest, err := r.scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: Search - scan row: %v", ErrScanRow, err)
		}
		restaurants = append(restaurants, rest)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: Search - rows error: %v", ErrScanRow, err)
	}

	return restaurants, nil
}

// ListLocations получает все города, упорядоченные по названию
func (r *Repository) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("locations").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListLocations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	locations := make([]*domain.Location, 0)
	for rows.Next() {
		var loc domain.Location
		if err := rows.Scan(&loc.ID, &loc.Name); err != nil {
			return nil, fmt.Errorf("%w: ListLocations - scan row: %v", ErrScanRow, err)
		}
		locations = append(locations, &loc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListLocations - rows error: %v", ErrScanRow, err)
	}

	return locations, nil
}

// ListCuisines получает все кухни, упорядоченные по названию
func (r *Repository) ListCuisines(ctx context.Context) ([]*domain.Cuisine, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("cuisines").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCuisines - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCuisines - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	cuisines := make([]*domain.Cuisine, 0)
	for rows.Next() {
		var cui domain.Cuisine
		if err := rows.Scan(&cui.ID, &cui.Name); err != nil {
			return nil, fmt.Errorf("%w: ListCuisines - scan row: %v", ErrScanRow, err)
		}
		cuisines = append(cuisines, &cui)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCuisines - rows error: %v", ErrScanRow, err)
	}

	return cuisines, nil
}

// getTables получает столы ресторана, упорядоченные по ID
// Порядок фиксирован, чтобы аллокация была детерминированной
func (r *Repository) getTables(ctx context.Context, restaurantID int64) ([]domain.Table, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "restaurant_id", "seats").
		From("tables").
		Where(squirrel.Eq{"restaurant_id": restaurantID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getTables - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getTables - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tables := make([]domain.Table, 0)
	for rows.Next() {
		var t domain.Table
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.Seats); err != nil {
			return nil, fmt.Errorf("%w: getTables - scan row: %v", ErrScanRow, err)
		}
		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getTables - rows error: %v", ErrScanRow, err)
	}

	return tables, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRestaurant сканирует строку выборки ресторана с JOIN
func (r *Repository) scanRestaurant(row rowScanner) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	var loc domain.Location
	var cui domain.Cuisine

	err := row.Scan(
		&rest.ID,
		&rest.Name,
		&rest.Slug,
		&rest.MainImage,
		&rest.Price,
		&rest.OpenTime,
		&rest.CloseTime,
		&rest.LocationID,
		&rest.CuisineID,
		&loc.Name,
		&cui.Name,
	)
	if err != nil {
		return nil, err
	}

	loc.ID = rest.LocationID
	cui.ID = rest.CuisineID
	rest.Location = &loc
	rest.Cuisine = &cui

	return &rest, nil
}
