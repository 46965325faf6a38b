package db

// TableRow 是本地索引库中每个分区表的行结构。
// 同一结构通过 gorm 的 Table() 挂到不同的表名上。
// ItemKey 对集合是元素 id，对单例固定为 SingletonKey
// Position 保留保存时的顺序
type TableRow struct {
	ItemKey  string `gorm:"primaryKey;size:191"`
	Position int    `gorm:"not null;default:0"`
	Payload  string `gorm:"type:text;not null"`
}

// SingletonKey 单例分区唯一一行的固定主键。
const SingletonKey = "1"
