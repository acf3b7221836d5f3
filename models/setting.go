package models

// Setting is a single key-value row backing the persisted session store
// (current email, guest user id).
type Setting struct {
	Key   string `json:"key" gorm:"primaryKey;column:key"`
	Value string `json:"value"`
}

func (Setting) TableName() string { return "settings" }
