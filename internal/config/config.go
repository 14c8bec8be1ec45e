package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "annotator.cfg.json"

// Config is the full typed configuration.
type Config struct {
	LogLevel string        `json:"logLevel" mapstructure:"logLevel"`
	LogsDir  string        `json:"logsDir" mapstructure:"logsDir"`
	Server   ServerConfig  `json:"server" mapstructure:"server"`
	Editor   EditorConfig  `json:"editor" mapstructure:"editor"`
	Basemap  BasemapConfig `json:"basemap" mapstructure:"basemap"`
	Preview  PreviewConfig `json:"preview" mapstructure:"preview"`
}

// ServerConfig holds HTTP transport settings
type ServerConfig struct {
	Address       string `json:"address" mapstructure:"address"`
	AppName       string `json:"appName" mapstructure:"appName"`
	UpdateBacklog int    `json:"updateBacklog" mapstructure:"updateBacklog"`
}

// EditorConfig holds the style given to new annotations and edit behavior
type EditorConfig struct {
	FillColor        string  `json:"fillColor" mapstructure:"fillColor"`
	LineColor        string  `json:"lineColor" mapstructure:"lineColor"`
	Opacity          float64 `json:"opacity" mapstructure:"opacity"`
	LineWeight       int     `json:"lineWeight" mapstructure:"lineWeight"`
	LineDash         string  `json:"lineDash" mapstructure:"lineDash"`
	MarkerSize       int     `json:"markerSize" mapstructure:"markerSize"`
	MarkerShape      string  `json:"markerShape" mapstructure:"markerShape"`
	VertexAddedStyle string  `json:"vertexAddedStyle" mapstructure:"vertexAddedStyle"`
}

// BasemapSource is one tile source
type BasemapSource struct {
	URL         string `json:"url" mapstructure:"url"`
	Attribution string `json:"attribution" mapstructure:"attribution"`
}

// BasemapConfig holds the tile source catalog
type BasemapConfig struct {
	Default string                   `json:"default" mapstructure:"default"`
	Sources map[string]BasemapSource `json:"sources" mapstructure:"sources"`
}

// PreviewConfig holds raster preview settings
type PreviewConfig struct {
	Width      int    `json:"width" mapstructure:"width"`
	Height     int    `json:"height" mapstructure:"height"`
	Padding    int    `json:"padding" mapstructure:"padding"`
	Background string `json:"background" mapstructure:"background"`
}

// SetDefaults registers the default value of every key.
func SetDefaults() {
	viper.SetDefault("logLevel", "info")
	viper.SetDefault("logsDir", "")

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.appName", "annotator")
	viper.SetDefault("server.updateBacklog", 64)

	viper.SetDefault("editor.fillColor", "#007bff")
	viper.SetDefault("editor.lineColor", "#000000")
	viper.SetDefault("editor.opacity", 1.0)
	viper.SetDefault("editor.lineWeight", 2)
	viper.SetDefault("editor.lineDash", "solid")
	viper.SetDefault("editor.markerSize", 24)
	viper.SetDefault("editor.markerShape", "circle")
	viper.SetDefault("editor.vertexAddedStyle", "full")

	viper.SetDefault("basemap.default", "osm")
	viper.SetDefault("basemap.sources.osm.url", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png")
	viper.SetDefault("basemap.sources.osm.attribution", "&copy; OpenStreetMap contributors")
	viper.SetDefault("basemap.sources.cartodb.url", "https://{s}.basemaps.cartocdn.com/light_all/{z}/{x}/{y}.png")
	viper.SetDefault("basemap.sources.cartodb.attribution", "&copy; CartoDB")
	viper.SetDefault("basemap.sources.dark.url", "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}.png")
	viper.SetDefault("basemap.sources.dark.attribution", "&copy; CartoDB")
	viper.SetDefault("basemap.sources.satellite.url", "https://server.arcgisonline.com/ArcGIS/rest/services/World_Imagery/MapServer/tile/{z}/{y}/{x}")
	viper.SetDefault("basemap.sources.satellite.attribution", "&copy; Esri")

	viper.SetDefault("preview.width", 1024)
	viper.SetDefault("preview.height", 768)
	viper.SetDefault("preview.padding", 32)
	viper.SetDefault("preview.background", "#ffffff")
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. Defaults stay in place
// when the file cannot be read.
func Load(configDir string) error {
	SetDefaults()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// Get returns the typed configuration, defaults merged with the file.
func Get() (Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	return c, nil
}
