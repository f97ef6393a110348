package entities

// Category representa a categoria de um post (conjunto fechado)
type Category string

const (
	CategoryAgriculture   Category = "Agriculture"
	CategoryBusiness      Category = "Business"
	CategoryEducation     Category = "Education"
	CategoryEntertainment Category = "Entertainment"
	CategoryArt           Category = "Art"
	CategoryInvestment    Category = "Investment"
	CategoryUncategorized Category = "Uncategorized"
	CategoryWeather       Category = "Weather"
)

// Categories lista todas as categorias aceitas, na ordem de exibição
var Categories = []Category{
	CategoryAgriculture,
	CategoryBusiness,
	CategoryEducation,
	CategoryEntertainment,
	CategoryArt,
	CategoryInvestment,
	CategoryUncategorized,
	CategoryWeather,
}

// ParseCategory converte uma string em Category (comparação exata, sensível a maiúsculas)
func ParseCategory(value string) (Category, bool) {
	c := Category(value)
	return c, c.IsValid()
}

// IsValid verifica se a categoria pertence ao conjunto fechado
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
