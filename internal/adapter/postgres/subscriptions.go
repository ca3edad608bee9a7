package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/savannawatch/climate-watch-api/internal/domain"
)

// InsertSubscription stores one alert subscription. The language defaults
// to English when unset.
func (s *Store) InsertSubscription(ctx context.Context, sub domain.Subscription) error {
	alertTypes, err := json.Marshal(sub.AlertTypes)
	if err != nil {
		return fmt.Errorf("encode alert types: %w", err)
	}

	language := sub.Language
	if language == "" {
		language = "en"
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO user_subscriptions (phone_number, county_id, alert_types, preferred_language, is_active)
		VALUES ($1, $2, $3, $4, $5)`,
		sub.PhoneNumber, sub.CountyID, alertTypes, language, sub.Active,
	)
	if err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// SubscriberPhones returns the phone numbers of active subscriptions in a
// county whose alert-type set contains alertType or the "all" wildcard.
func (s *Store) SubscriberPhones(ctx context.Context, countyID int, alertType string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT phone_number FROM user_subscriptions
		WHERE county_id = $1
		  AND is_active = true
		  AND (alert_types ? $2 OR alert_types ? $3)`,
		countyID, alertType, domain.AlertTypeAll,
	)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	var phones []string
	for rows.Next() {
		var phone string
		if err := rows.Scan(&phone); err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		phones = append(phones, phone)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribers: %w", err)
	}
	return phones, nil
}
