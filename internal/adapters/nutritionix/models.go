package nutritionix

type naturalRequest struct {
	Query string `json:"query"`
}

type naturalResponse struct {
	Foods []naturalFood `json:"foods"`
}

type naturalFood struct {
	FoodName          string  `json:"food_name"`
	Calories          float64 `json:"nf_calories"`
	Protein           float64 `json:"nf_protein"`
	TotalFat          float64 `json:"nf_total_fat"`
	TotalCarbohydrate float64 `json:"nf_total_carbohydrate"`
}

// InstantResult is the subset of /v2/search/instant the service uses
type InstantResult struct {
	Common  []InstantFood `json:"common"`
	Branded []InstantFood `json:"branded"`
}

// InstantFood is one instant-search hit. Common foods carry no brand and often no calories
type InstantFood struct {
	FoodName    string   `json:"food_name"`
	BrandName   string   `json:"brand_name"`
	Calories    float64  `json:"nf_calories"`
	ServingUnit string   `json:"serving_unit"`
	ServingQty  *float64 `json:"serving_qty"`
}

// Qty returns the serving quantity, 1 when absent
func (f InstantFood) Qty() float64 {
	if f.ServingQty == nil {
		return 1
	}
	return *f.ServingQty
}
