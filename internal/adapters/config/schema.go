package config

// Knitfile represents the structure of the knit.yaml configuration file.
type Knitfile struct {
	Version             string   `yaml:"version"`
	Root                string   `yaml:"root"`
	Output              string   `yaml:"output"`
	SourceMap           string   `yaml:"sourceMap"`
	Format              string   `yaml:"format"`
	Minify              bool     `yaml:"minify"`
	Packages            []string `yaml:"packages"`
	Entries             []string `yaml:"entries"`
	Duplicates          string   `yaml:"duplicates"`
	StrictAbsolutePaths bool     `yaml:"strictAbsolutePaths"`
}
