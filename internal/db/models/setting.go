package models

// Setting is one key of the site wide settings map, e.g. seo_title.
type Setting struct {
	Name  string `gorm:"column:key;primaryKey;size:191"`
	Value string `gorm:"type:text"`
}

// TableName of the settings table.
func (Setting) TableName() string { return "settings" }
