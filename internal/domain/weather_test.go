package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCondition(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "clear"},
		{1, "clear"},
		{2, "clear"},
		{3, "cloudy"},
		{45, "cloudy"},
		{51, "rain"},
		{61, "rain"},
		{67, "rain"},
		{71, "snow"},
		{77, "snow"},
		{80, "cloudy"}, // showers fall outside the drizzle/rain band
		{95, "cloudy"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Condition(tt.code), "code %d", tt.code)
	}
}

func TestClothingAdvice(t *testing.T) {
	assert.Equal(t, "Winter coat, hat, and gloves!", ClothingAdvice(-5))
	assert.Equal(t, "Winter coat, hat, and gloves!", ClothingAdvice(39))
	assert.Equal(t, "Jacket or heavy hoodie.", ClothingAdvice(40))
	assert.Equal(t, "Long sleeves or light layer.", ClothingAdvice(60))
	assert.Equal(t, "Shorts and T-shirt weather!", ClothingAdvice(75))
	assert.Equal(t, "Shorts and T-shirt weather!", ClothingAdvice(101))
}

func TestEnrichWeather(t *testing.T) {
	r := EnrichWeather(WeatherReport{Temp: 28, Code: 73, Min: 20, Max: 31})

	assert.Equal(t, "snow", r.Condition)
	assert.Equal(t, "Winter coat, hat, and gloves!", r.Clothing)
	assert.Equal(t, 28, r.Temp)
}
