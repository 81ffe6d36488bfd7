package postgres

import (
	"fmt"

	"healthwatch/internal/domain/record"
	"healthwatch/internal/domain/user"
)

// reporter: колонки LEFT JOIN users; все NULL, если аккаунт не найден.
type reporter struct {
	id, name, email *string
}

func (r *reporter) dest() []any {
	return []any{&r.id, &r.name, &r.email}
}

func (r *reporter) public() *user.Public {
	if r.id == nil {
		return nil
	}
	p := user.Public{ID: *r.id}
	if r.name != nil {
		p.Name = *r.name
	}
	if r.email != nil {
		p.Email = *r.email
	}
	return &p
}

const reporterColumns = `u.id::text, u.name, u.email`

// insertErr переводит ошибку INSERT с внешним ключом reported_by.
func insertErr(kind string, err error) error {
	switch pgCode(err) {
	case codeForeignKeyViolation, codeInvalidText:
		return record.ErrUnknownReporter
	}
	return fmt.Errorf("insert %s: %w", kind, err)
}
