package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sngm3741/higo-analytics/api/internal/analytics/domain"
)

// RecordDocument は MongoDB 上での来店記録スキーマを Go 構造体として表現したもの。
// number はソースデータ由来の連番で一意性は保証されない。識別子は _id のみ。
type RecordDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Number          int                `bson:"number"`
	LocationName    string             `bson:"locationName"`
	Date            time.Time          `bson:"date"`
	LoginHour       string             `bson:"loginHour"`
	Name            string             `bson:"name"`
	Age             int                `bson:"age"`
	Gender          string             `bson:"gender"`
	Email           string             `bson:"email"`
	Phone           string             `bson:"phone"`
	BrandDevice     string             `bson:"brandDevice"`
	DigitalInterest string             `bson:"digitalInterest"`
	LocationType    string             `bson:"locationType"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

// mapRecordDocument は Mongo ドキュメントをドメイン Record へ変換する。
func mapRecordDocument(doc RecordDocument) domain.Record {
	return domain.Record{
		ID:              doc.ID.Hex(),
		Number:          doc.Number,
		LocationName:    doc.LocationName,
		Date:            doc.Date,
		LoginHour:       doc.LoginHour,
		Name:            doc.Name,
		Age:             doc.Age,
		Gender:          domain.Gender(doc.Gender),
		Email:           doc.Email,
		Phone:           doc.Phone,
		BrandDevice:     doc.BrandDevice,
		DigitalInterest: doc.DigitalInterest,
		LocationType:    doc.LocationType,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}
