package catalog

import "vegholic-api/models"

func unsplash(photo string) string {
	return "https://images.unsplash.com/" + photo + "?q=80&w=800&auto=format&fit=crop"
}

// SeedProducts is the catalog inserted into an empty product collection.
var SeedProducts = []models.Product{
	{Name: "Spinach", Description: "Fresh leafy spinach, rich in iron.", PricePerKg: 80, Category: models.CategoryLeafy, ImageURL: unsplash("photo-1604909052743-94e838986d24")},
	{Name: "Carrot", Description: "Crunchy sweet carrots.", PricePerKg: 60, Category: models.CategoryRoot, ImageURL: unsplash("photo-1547514701-42782101795e")},
	{Name: "Tomato", Description: "Juicy farm tomatoes.", PricePerKg: 50, Category: models.CategoryFruits, ImageURL: unsplash("photo-1546470427-2abef20b2c52")},
	{Name: "Potato", Description: "All-purpose potatoes.", PricePerKg: 35, Category: models.CategoryRoot, ImageURL: unsplash("photo-1570233476081-60c2a2a55fe4")},
	{Name: "Cucumber", Description: "Cool and refreshing cucumbers.", PricePerKg: 45, Category: models.CategoryFruits, ImageURL: unsplash("photo-1613743983595-cf000a6b8ec3")},
	{Name: "Cabbage", Description: "Crisp green cabbage.", PricePerKg: 40, Category: models.CategoryLeafy, ImageURL: unsplash("photo-1601000938259-d3c9d0948a3a")},
	{Name: "Beetroot", Description: "Sweet earthy beets.", PricePerKg: 70, Category: models.CategoryRoot, ImageURL: unsplash("photo-1510627498534-cf7e9002facc")},
	{Name: "Organic Lettuce", Description: "Organic crunchy lettuce.", PricePerKg: 120, Category: models.CategoryOrganic, ImageURL: unsplash("photo-1566786630087-54f3ad504fcd")},
}
