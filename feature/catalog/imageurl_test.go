package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildImageURL(t *testing.T) {
	cfg := Config{BaseURL: "https://content.cylindo.com/api/v2", CustomerID: "4928"}

	t.Run("BasicShape", func(t *testing.T) {
		url := BuildImageURL(cfg, "CH_01", ImageParams{Frame: 1, Size: 1500}, []Selection{
			{Feature: "BASE", Option: "b1"},
			{Feature: "TEXTILE", Option: "t2"},
		})

		assert.Equal(t,
			"https://content.cylindo.com/api/v2/4928/products/CH_01/frames/1/CH_01.PNG"+
				"?size=1500&encoding=png&removeEnvironmentShadow=true"+
				"&feature=BASE:b1&feature=TEXTILE:t2",
			url)
	})

	t.Run("SkipSharpening", func(t *testing.T) {
		url := BuildImageURL(cfg, "CH_01", ImageParams{Frame: 8, Size: 1000, SkipSharpening: true}, nil)
		assert.Contains(t, url, "/frames/8/")
		assert.Contains(t, url, "&skipSharpening=true")
	})

	t.Run("ColonStaysLiteral", func(t *testing.T) {
		url := BuildImageURL(cfg, "CH_01", ImageParams{Frame: 1, Size: 1500}, []Selection{
			{Feature: "SEAT HEIGHT", Option: "45&up"},
		})
		assert.Contains(t, url, "feature=SEAT%20HEIGHT:45%26up")
	})
}
