package courier

import (
	"dispatch/internal/entities"
)

func ToDomain(c *CourierDB) *entities.Courier {
	if c == nil {
		return nil
	}

	courier := &entities.Courier{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	// позиция есть только если курьер хоть раз ее отправил
	if c.Latitude != nil && c.Longitude != nil && c.PositionUpdatedAt != nil {
		courier.Position = &entities.CourierPosition{
			CourierID:  c.ID,
			Latitude:   *c.Latitude,
			Longitude:  *c.Longitude,
			ReportedAt: *c.PositionUpdatedAt,
		}
	}

	return courier
}

func FromDomainModify(courierModify *entities.CourierModify) *CourierModifyDB {
	if courierModify == nil {
		return nil
	}

	return &CourierModifyDB{
		ID:    courierModify.ID,
		Name:  courierModify.Name,
		Email: courierModify.Email,
	}
}

func ToDomainList(couriersDB []CourierDB) []entities.Courier {
	if len(couriersDB) == 0 {
		return []entities.Courier{}
	}

	result := make([]entities.Courier, len(couriersDB))
	for i, courierDB := range couriersDB {
		result[i] = *ToDomain(&courierDB)
	}
	return result
}
