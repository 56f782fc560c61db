package tablestore

import (
	"strings"

	"github.com/lepinkainen/tablestore/internal/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ValidateName checks a table name against the allow-list.
// Table names can't be bound as parameters, so this is the only thing standing
// between user input and the identifier position of every statement.
// Allowed characters are A-Z, a-z, 0-9 and underscore.
func ValidateName(name string) error {
	if name == "" {
		return errors.NewInvalidNameError(name, errors.ReasonEmpty)
	}
	for i := 0; i < len(name); i++ {
		if !isNameByte(name[i]) {
			return errors.NewInvalidNameError(name, errors.ReasonDisallowedChar)
		}
	}
	return nil
}

func isNameByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// displayName turns a table name into the form used in messages:
// "fruit_BASKET" -> "Fruit Basket"
func displayName(name string) string {
	spaced := strings.ReplaceAll(strings.ToLower(name), "_", " ")
	return cases.Title(language.Und).String(spaced)
}
