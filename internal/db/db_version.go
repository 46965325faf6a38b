package db

// DBVersion 记录本地索引库的结构版本，表中至多一行。
type DBVersion struct {
	ID      uint `gorm:"primaryKey"`
	Version int  `gorm:"not null"`
}

// TableName 返回自定义表名
func (DBVersion) TableName() string {
	return "db_versions"
}
