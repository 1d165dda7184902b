// Package seed crea las tablas de la tienda y carga los datos de ejemplo.
package seed

import (
	"context"
	"fmt"

	"github.com/jhoicas/shop-query-api/internal/domain/catalog"
	"github.com/jhoicas/shop-query-api/internal/infrastructure/sqlbuild"
)

// Execer ejecuta sentencias sin resultado. Los ejecutores de postgres y sqlite lo implementan.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) error
}

// Options controla la carga.
type Options struct {
	// Reset borra las tablas antes de crearlas.
	Reset bool
	// SchemaOnly crea las tablas sin insertar datos.
	SchemaOnly bool
}

// Run crea el esquema y, salvo SchemaOnly, inserta el dataset.
func Run(ctx context.Context, db Execer, dialect sqlbuild.Dialect, ds Dataset, opts Options) error {
	if opts.Reset {
		for _, s := range sqlbuild.Statements(dropTables) {
			if err := db.Exec(ctx, s); err != nil {
				return fmt.Errorf("drop tables: %w", err)
			}
		}
	}
	for _, s := range sqlbuild.Statements(createTables) {
		if err := db.Exec(ctx, s); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
	}
	if opts.SchemaOnly {
		return nil
	}
	inserts, err := Inserts(sqlbuild.New(catalog.Schema(), dialect), ds)
	if err != nil {
		return err
	}
	for _, q := range inserts {
		if err := db.Exec(ctx, q.SQL, q.Args...); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}

// Inserts arma los INSERT del dataset en orden de dependencias; omite tablas vacías.
func Inserts(b *sqlbuild.Builder, ds Dataset) ([]sqlbuild.SQLQuery, error) {
	type batch struct {
		entity  string
		columns []string
		rows    [][]interface{}
	}
	batches := []batch{
		{entity: catalog.Team, columns: []string{"id", "name"}},
		{entity: catalog.Member, columns: []string{"id", "username", "age", "team_id"}},
		{entity: catalog.Item, columns: []string{"id", "name", "price", "stock_quantity"}},
		{entity: catalog.Delivery, columns: []string{"id", "city", "street", "zipcode", "status"}},
		{entity: catalog.Order, columns: []string{"id", "member_id", "delivery_id", "order_date", "status"}},
		{entity: catalog.OrderItem, columns: []string{"id", "order_id", "item_id", "order_price", "quantity"}},
	}
	for _, t := range ds.Teams {
		batches[0].rows = append(batches[0].rows, []interface{}{t.ID, t.Name})
	}
	for _, m := range ds.Members {
		batches[1].rows = append(batches[1].rows, []interface{}{m.ID, m.Username, m.Age, nullable(m.TeamID)})
	}
	for _, it := range ds.Items {
		batches[2].rows = append(batches[2].rows, []interface{}{it.ID, it.Name, it.Price, it.StockQuantity})
	}
	for _, d := range ds.Deliveries {
		batches[3].rows = append(batches[3].rows, []interface{}{d.ID, d.Address.City, d.Address.Street, d.Address.Zipcode, string(d.Status)})
	}
	for _, o := range ds.Orders {
		batches[4].rows = append(batches[4].rows, []interface{}{o.ID, o.MemberID, nullable(o.DeliveryID), o.OrderDate, string(o.Status)})
		for _, oi := range o.Items {
			batches[5].rows = append(batches[5].rows, []interface{}{oi.ID, oi.OrderID, oi.ItemID, oi.OrderPrice, oi.Quantity})
		}
	}

	out := make([]sqlbuild.SQLQuery, 0, len(batches))
	for _, bt := range batches {
		if len(bt.rows) == 0 {
			continue
		}
		q, err := b.Insert(bt.entity, bt.columns, bt.rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, nil
}

func nullable(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
