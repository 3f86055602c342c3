package model

// CustomEconomics 用户自定义的吸烟成本参数，两个字段始终一起写入
// swagger:model CustomEconomics
type CustomEconomics struct {
	CigarettesPerDay int     `json:"customCigarettesPerDay"`
	CostPerCigarette float64 `json:"costPerCigarette"`
}

func DefaultEconomics() CustomEconomics {
	return CustomEconomics{
		CigarettesPerDay: 10,
		CostPerCigarette: 15,
	}
}

// Savings 按天数推算出的节省统计
type Savings struct {
	Days              int     `json:"days"`
	CigarettesAvoided int     `json:"cigarettesAvoided"`
	MoneySaved        float64 `json:"moneySaved"`
}
