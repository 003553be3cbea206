package controller

import (
	"net/http"
	"testing"

	"github.com/beanvanilla/storefront-backend/internal/app/model"
	"github.com/beanvanilla/storefront-backend/internal/app/service"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiftController_Curate(t *testing.T) {
	ctrl := NewGiftController(service.NewProductService(service.NewFixtureCatalog(0), 6))
	router := gin.New()
	router.GET("/api/gifts/curate", ctrl.Curate)

	tests := []struct {
		name  string
		query string
		title string
		want  []string
	}{
		{
			name:  "for her at the default budget",
			query: "?recipient=her",
			title: "The classic Edit for Her",
			want:  []string{"Celestial Sapphire Studs", "Rose Gold Promise", "Koa Minimalist Slim"},
		},
		{
			name:  "for myself",
			query: "?recipient=myself&style=bold&budget=low",
			title: "Your bold Edit",
			want:  []string{"Earthy Amber Pendant"},
		},
		{
			name:  "criteria are case-insensitive",
			query: "?recipient=Her",
			title: "The classic Edit for Her",
			want:  []string{"Celestial Sapphire Studs", "Rose Gold Promise", "Koa Minimalist Slim"},
		},
		{
			name:  "for myself in mixed case",
			query: "?recipient=MySelf&style=Bold&budget=LOW",
			title: "Your bold Edit",
			want:  []string{"Earthy Amber Pendant"},
		},
		{
			name:  "defaults match nothing",
			query: "",
			title: "The classic Edit for Them",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodGet, "/api/gifts/curate"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code)

			var body struct {
				Title    string          `json:"title"`
				Products []model.Product `json:"products"`
			}
			decodeBody(t, w, &body)
			assert.Equal(t, tt.title, body.Title)
			assert.Equal(t, tt.want, names(body.Products))
		})
	}
}
