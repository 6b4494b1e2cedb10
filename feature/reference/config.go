package reference

// Config holds configuration for the reference dataset.
type Config struct {
	// Path is the local path of the dataset file (.xlsx or .csv).
	Path string `mapstructure:"path" default:"reference.xlsx"`
	// Object is the object name of the dataset in the storage bucket.
	// When set, the dataset is downloaded instead of read from Path.
	Object string `mapstructure:"object" default:""`
	// Sheet is the worksheet to read (xlsx only). Empty selects the first sheet.
	Sheet string `mapstructure:"sheet" default:""`
	// ItemNumberColumn is the header of the item identifier column.
	ItemNumberColumn string `mapstructure:"item_number_column" default:"ItemNumber"`
	// ItemNameColumn is the header of the item name column.
	ItemNameColumn string `mapstructure:"item_name_column" default:"ItemName"`
	// BaseColorColumn is the header of the descriptive base color column.
	BaseColorColumn string `mapstructure:"base_color_column" default:"BaseColor"`
	// MaterialColumn is the header of the material/color code column.
	MaterialColumn string `mapstructure:"material_column" default:"MaterialCode"`
}

func (c Config) requiredColumns() []string {
	return []string{c.ItemNumberColumn, c.ItemNameColumn, c.BaseColorColumn, c.MaterialColumn}
}
