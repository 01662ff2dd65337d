package dateconv

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pkg/errors"
)

// SQLDateOf returns d as a database date value, pinned to UTC midnight so
// the driver encodes the same calendar day regardless of session timezone.
func SQLDateOf(d civil.Date) pgtype.Date {
	return pgtype.Date{
		Time:  time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC),
		Valid: true,
	}
}

func civilOf(d pgtype.Date) (civil.Date, error) {
	if !d.Valid {
		return civil.Date{}, errors.New("dateconv: NULL date")
	}
	if d.InfinityModifier != pgtype.Finite {
		return civil.Date{}, errors.Errorf("dateconv: %v date", d.InfinityModifier)
	}
	return civil.DateOf(d.Time), nil
}
