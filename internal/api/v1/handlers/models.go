package handlers

import (
	"ulascansenturk/weather-dashboard/internal/recency"
)

type RecentsResponse struct {
	Recents []recency.Location `json:"recents"`
}

type Error struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
	Title  string `json:"title"`
}

type ErrorResponse struct {
	Errors []Error `json:"errors"`
}
