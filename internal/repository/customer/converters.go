package customer

import "dispatch/internal/entities"

func ToDomain(c *CustomerDB) *entities.Customer {
	if c == nil {
		return nil
	}
	return &entities.Customer{
		ID:           c.ID,
		Name:         c.Name,
		Street:       c.Street,
		Number:       c.Number,
		Neighborhood: c.Neighborhood,
		Phone:        c.Phone,
		CreatedAt:    c.CreatedAt,
	}
}

func ToDomainList(customersDB []CustomerDB) []entities.Customer {
	result := make([]entities.Customer, len(customersDB))
	for i := range customersDB {
		result[i] = *ToDomain(&customersDB[i])
	}
	return result
}

// phoneValue - пустая строка в правке означает "стереть телефон".
func phoneValue(phone *string) *string {
	if phone == nil || *phone == "" {
		return nil
	}
	return phone
}
