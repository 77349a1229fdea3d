package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gordopods/storefront/internal/delivery"
	"github.com/gordopods/storefront/internal/store"
)

const (
	keyDeliverySettings   = "settings:delivery"
	keyAppearanceSettings = "settings:appearance"
)

type Appearance struct {
	StoreName      string `json:"store_name"`
	LogoURL        string `json:"logo_url"`
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	WhatsAppNumber string `json:"whatsapp_number"`
	Instagram      string `json:"instagram"`
	Address        string `json:"address"`
}

func DefaultAppearance() Appearance {
	return Appearance{
		StoreName:      "Gordopods",
		PrimaryColor:   "#000000",
		SecondaryColor: "#ffffff",
	}
}

type SettingsService struct {
	Store store.Store
}

func (s *SettingsService) Delivery(ctx context.Context) (delivery.Config, error) {
	cfg := delivery.DefaultConfig()
	if err := store.LoadJSON(ctx, s.Store, keyDeliverySettings, &cfg); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return delivery.DefaultConfig(), nil
		}
		return delivery.Config{}, err
	}
	return cfg, nil
}

func (s *SettingsService) SaveDelivery(ctx context.Context, cfg delivery.Config) (delivery.Config, error) {
	if err := cfg.Validate(); err != nil {
		return delivery.Config{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if len(cfg.Methods()) == 0 {
		return delivery.Config{}, fmt.Errorf("%w: at least one delivery method must be enabled", ErrValidation)
	}
	if err := store.SaveJSON(ctx, s.Store, keyDeliverySettings, cfg); err != nil {
		return delivery.Config{}, err
	}
	return cfg, nil
}

func (s *SettingsService) Appearance(ctx context.Context) (Appearance, error) {
	a := DefaultAppearance()
	if err := store.LoadJSON(ctx, s.Store, keyAppearanceSettings, &a); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return DefaultAppearance(), nil
		}
		return Appearance{}, err
	}
	return a, nil
}

func (s *SettingsService) SaveAppearance(ctx context.Context, a Appearance) (Appearance, error) {
	a.StoreName = strings.TrimSpace(a.StoreName)
	if a.StoreName == "" {
		return Appearance{}, fmt.Errorf("%w: store name required", ErrValidation)
	}
	if err := store.SaveJSON(ctx, s.Store, keyAppearanceSettings, a); err != nil {
		return Appearance{}, err
	}
	return a, nil
}
