package models

import "database/sql"

type Models struct {
	Order OrderModel
}

func NewModels(db *sql.DB) Models {
	return Models{
		Order: OrderModel{DB: db},
	}
}
