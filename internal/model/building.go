package model

import (
	"fmt"
	"time"
)

type Building struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Systems     []SystemInfo `json:"systems"`
}

func (b Building) clone() Building {
	out := b
	out.Systems = append([]SystemInfo{}, b.Systems...)
	return out
}

type SystemInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Manufacturer string `json:"manufacturer"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number"`
	BuildingID   string `json:"building_id"`
}

type Location struct {
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Zip       string   `json:"zip"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (l Location) FullAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", l.Address, l.City, l.State, l.Zip)
}

func (l Location) clone() Location {
	out := l
	if l.Latitude != nil {
		lat := *l.Latitude
		out.Latitude = &lat
	}
	if l.Longitude != nil {
		lng := *l.Longitude
		out.Longitude = &lng
	}
	return out
}

type Media struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	URI          string    `json:"uri"`
	ThumbnailURI string    `json:"thumbnail_uri"`
	Description  string    `json:"description"`
	CapturedAt   time.Time `json:"captured_at"`
	CapturedBy   string    `json:"captured_by"`
}
