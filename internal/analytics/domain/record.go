package domain

import "time"

// Gender は来店記録に保持する性別の列挙値。取り込みツール側で正規化済みの
// 2 値のみが永続化される。
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Valid reports whether g is one of the two persisted values.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// Record represents a single customer visit/login event.
// 書き込みは取り込みツール専用で、クエリコアからは読み取り専用として扱う。
type Record struct {
	ID              string
	Number          int
	LocationName    string
	Date            time.Time
	LoginHour       string
	Name            string
	Age             int
	Gender          Gender
	Email           string
	Phone           string
	BrandDevice     string
	DigitalInterest string
	LocationType    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
