// Package repository provides the GORM data access layer.
package repository

import (
	"errors"
	"strings"

	"soupbox/internal/models"

	"gorm.io/gorm"
)

// omitPassword is used for every preload of an owning user.
func omitPassword(db *gorm.DB) *gorm.DB {
	return db.Omit("password")
}

// translate maps a GORM error for resource/id onto the AppError taxonomy.
func translate(err error, resource string, id interface{}) error {
	if err == nil {
		return nil
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere in the value.
// It must be used together with ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
