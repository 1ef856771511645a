package handlers

import (
	"time"

	"github.com/agendly-app/agendly-api/internal/models"
	"github.com/agendly-app/agendly-api/internal/timezone"
)

// resolves the official timezone of the business
func locationForBusiness(biz *models.Business) *time.Location {
	if biz != nil {
		return timezone.Location(biz.Timezone)
	}
	return timezone.Location("")
}

func nowForBusiness(biz *models.Business) time.Time {
	return time.Now().In(locationForBusiness(biz))
}

func parseDateForBusiness(biz *models.Business, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationForBusiness(biz),
	)
}

func parseDateTimeForBusiness(
	biz *models.Business,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		locationForBusiness(biz),
	)
}
