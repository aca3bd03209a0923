package apiclient

import "encoding/json"

// FilterPreferences are the browse filters a customer keeps between
// visits. Stored locally, never sent as-is to the service.
type FilterPreferences struct {
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	Allergens           []string `json:"allergens"`
	PricePerPersonBand  string   `json:"pricePerPersonBand"`
}

func (c *Client) SaveFilterPreferences(p FilterPreferences) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.Store.Set(KeyFilterPrefs, string(b))
}

// FilterPrefs returns the stored preferences, or the zero value when
// nothing has been saved yet.
func (c *Client) FilterPrefs() (FilterPreferences, error) {
	raw, err := c.Store.Get(KeyFilterPrefs)
	if err != nil {
		if err == ErrKeyNotFound {
			return FilterPreferences{}, nil
		}
		return FilterPreferences{}, err
	}
	var p FilterPreferences
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return FilterPreferences{}, err
	}
	return p, nil
}

func (c *Client) ClearFilterPreferences() error {
	return c.Store.Delete(KeyFilterPrefs)
}
