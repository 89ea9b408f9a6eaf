package restaurant

import "time"

// Restaurant is the owner account and the menu it publishes.
type Restaurant struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"password,omitempty"`
	Menu      []Category `json:"menu"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type Category struct {
	Category string     `json:"category"`
	Items    []MenuItem `json:"items"`
}

type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// FindItem looks a menu item up by id across all categories.
func (r Restaurant) FindItem(id string) (MenuItem, bool) {
	if id == "" {
		return MenuItem{}, false
	}
	for _, cat := range r.Menu {
		for _, item := range cat.Items {
			if item.ID == id {
				return item, true
			}
		}
	}
	return MenuItem{}, false
}

func sanitize(r Restaurant) Restaurant {
	r.Password = ""
	return r
}
