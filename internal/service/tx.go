package service

import (
	"database/sql"

	"gorm.io/gorm"
)

// txRunner is the transactional slice of *gorm.DB the submission pipelines
// depend on. Tests substitute an in-memory runner.
type txRunner interface {
	Transaction(fc func(tx *gorm.DB) error, opts ...*sql.TxOptions) error
}
