// Basketminer - Market Basket Analysis and Association Rule Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/basketminer

package dataset

// category is a named group of products in the supermarket catalog.
type category struct {
	name     string
	products []string
}

// catalog is ordered so that seeded generation is reproducible.
var catalog = []category{
	{"fruits", []string{"Apples", "Bananas", "Oranges", "Grapes", "Strawberries", "Watermelon", "Pineapple", "Mango", "Kiwi", "Blueberries", "Cherries", "Peaches"}},
	{"vegetables", []string{"Lettuce", "Tomatoes", "Carrots", "Broccoli", "Spinach", "Cucumbers", "Bell Peppers", "Onions", "Potatoes", "Garlic", "Mushrooms", "Zucchini"}},
	{"dairy", []string{"Milk", "Yogurt", "Cheese", "Butter", "Cream", "Sour Cream", "Cottage Cheese", "Cream Cheese", "Eggs", "Whipped Cream"}},
	{"meat", []string{"Chicken Breast", "Ground Beef", "Pork Chops", "Bacon", "Sausage", "Salmon", "Tuna", "Shrimp", "Turkey", "Ham"}},
	{"bakery", []string{"Bread", "Bagels", "Croissants", "Muffins", "Donuts", "Baguette", "Rolls", "Tortillas", "Pita Bread"}},
	{"grains", []string{"Rice", "Pasta", "Cereal", "Oatmeal", "Quinoa", "Flour", "Bread Crumbs", "Couscous"}},
	{"canned", []string{"Canned Tomatoes", "Canned Beans", "Canned Corn", "Canned Soup", "Canned Tuna", "Tomato Sauce", "Pasta Sauce"}},
	{"condiments", []string{"Olive Oil", "Vegetable Oil", "Ketchup", "Mustard", "Mayonnaise", "Soy Sauce", "Hot Sauce", "Salad Dressing", "BBQ Sauce"}},
	{"spices", []string{"Salt", "Pepper", "Garlic Powder", "Paprika", "Cumin", "Italian Seasoning", "Cinnamon", "Vanilla Extract"}},
	{"beverages", []string{"Coffee", "Tea", "Orange Juice", "Apple Juice", "Soda", "Energy Drink", "Bottled Water", "Sports Drink", "Lemonade", "Iced Tea"}},
	{"alcohol", []string{"Beer", "Wine", "Spirits"}},
	{"snacks", []string{"Chips", "Crackers", "Pretzels", "Popcorn", "Nuts", "Trail Mix", "Granola Bars", "Protein Bars", "Rice Cakes"}},
	{"sweets", []string{"Chocolate", "Cookies", "Candy", "Ice Cream", "Cake", "Brownies", "Gummy Bears", "Chocolate Chips"}},
	{"frozen", []string{"Frozen Pizza", "Frozen Vegetables", "Frozen Meals", "Ice Cream", "Frozen Fruit", "Frozen Fries", "Frozen Chicken Nuggets", "Frozen Waffles"}},
	{"health", []string{"Protein Powder", "Vitamins", "Protein Shake", "Almond Milk", "Greek Yogurt", "Hummus", "Avocado", "Chia Seeds", "Coconut Oil"}},
	{"household", []string{"Detergent", "Dish Soap", "Paper Towels", "Toilet Paper", "Trash Bags", "Cleaning Spray", "Sponges", "Aluminum Foil", "Plastic Wrap"}},
	{"personal", []string{"Shampoo", "Toothpaste", "Soap", "Deodorant", "Tissues", "Hand Sanitizer", "Lotion", "Razors"}},
	{"baby", []string{"Diapers", "Baby Wipes", "Baby Food", "Baby Formula", "Baby Lotion"}},
	{"pet", []string{"Pet Food", "Pet Treats", "Cat Litter", "Pet Shampoo"}},
}

// categoryIndex maps a category name to its position in catalog.
var categoryIndex = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, c := range catalog {
		idx[c.name] = i
	}
	return idx
}()

// Segment describes a customer segment of the simulated store.
type Segment struct {
	Name       string   `json:"name"`
	Weight     float64  `json:"weight"`
	MinBasket  int      `json:"min_basket"`
	MaxBasket  int      `json:"max_basket"`
	Categories []string `json:"categories"`
}

// Segments are the simulated customer segments. Weights sum to one.
var Segments = []Segment{
	{"budget", 0.25, 3, 8, []string{"grains", "canned", "frozen", "household"}},
	{"regular", 0.35, 5, 12, []string{"dairy", "meat", "vegetables", "fruits", "bakery", "beverages"}},
	{"premium", 0.15, 8, 18, []string{"meat", "dairy", "fruits", "vegetables", "health", "alcohol", "sweets"}},
	{"health_conscious", 0.12, 6, 14, []string{"health", "fruits", "vegetables", "dairy", "meat", "grains"}},
	{"convenience", 0.08, 2, 6, []string{"frozen", "snacks", "beverages", "bakery"}},
	{"family", 0.05, 12, 25, []string{"dairy", "meat", "vegetables", "fruits", "snacks", "household", "bakery", "frozen"}},
}

// patterns are baskets that real shoppers tend to buy together.
var patterns = map[string][][]string{
	"breakfast": {
		{"Milk", "Cereal", "Bananas", "Orange Juice"},
		{"Bread", "Eggs", "Bacon", "Butter", "Coffee"},
		{"Yogurt", "Granola Bars", "Blueberries", "Honey"},
		{"Bagels", "Cream Cheese", "Coffee", "Orange Juice"},
		{"Oatmeal", "Milk", "Strawberries", "Honey"},
		{"Croissants", "Butter", "Coffee", "Orange Juice"},
	},
	"dinner_italian": {
		{"Pasta", "Tomato Sauce", "Cheese", "Olive Oil", "Garlic", "Bread"},
		{"Pasta", "Ground Beef", "Canned Tomatoes", "Onions", "Garlic Powder"},
		{"Pizza Dough", "Tomato Sauce", "Cheese", "Pepperoni", "Olive Oil"},
	},
	"dinner_american": {
		{"Ground Beef", "Hamburger Buns", "Cheese", "Lettuce", "Tomatoes", "Ketchup", "Chips"},
		{"Chicken Breast", "Rice", "Broccoli", "Soy Sauce"},
		{"Pork Chops", "Potatoes", "Green Beans", "Butter"},
		{"Salmon", "Asparagus", "Lemon", "Olive Oil"},
	},
	"dinner_mexican": {
		{"Tortillas", "Ground Beef", "Cheese", "Lettuce", "Tomatoes", "Sour Cream", "Salsa"},
		{"Chicken", "Rice", "Beans", "Tortillas", "Avocado"},
	},
	"dinner_asian": {
		{"Rice", "Soy Sauce", "Chicken", "Broccoli", "Carrots"},
		{"Noodles", "Vegetables", "Soy Sauce", "Sesame Oil"},
		{"Shrimp", "Rice", "Bell Peppers", "Soy Sauce"},
	},
	"salad": {
		{"Lettuce", "Tomatoes", "Cucumbers", "Salad Dressing", "Croutons"},
		{"Spinach", "Strawberries", "Feta Cheese", "Balsamic Vinegar"},
		{"Lettuce", "Chicken", "Caesar Dressing", "Parmesan Cheese"},
	},
	"snacking": {
		{"Chips", "Soda"},
		{"Cookies", "Milk"},
		{"Chocolate", "Ice Cream"},
		{"Crackers", "Cheese"},
		{"Popcorn", "Soda"},
		{"Nuts", "Dried Fruit"},
	},
	"quick_meal": {
		{"Frozen Pizza", "Soda"},
		{"Frozen Meals", "Bread"},
		{"Canned Soup", "Crackers", "Cheese"},
		{"Ramen", "Eggs", "Green Onions"},
	},
	"household_shopping": {
		{"Detergent", "Dish Soap", "Paper Towels", "Toilet Paper"},
		{"Trash Bags", "Cleaning Spray", "Sponges"},
		{"Laundry Detergent", "Fabric Softener", "Bleach"},
	},
}

// impulseItems are single items added at the checkout.
var impulseItems = []string{"Chocolate", "Candy", "Soda", "Chips", "Cookies", "Ice Cream", "Energy Drink"}

var seasons = []string{"spring", "summer", "fall", "winter"}

var seasonalItems = map[string][]string{
	"spring": {"Strawberries", "Asparagus", "Peas", "Spinach", "Lettuce"},
	"summer": {"Watermelon", "Ice Cream", "Lemonade", "BBQ Sauce", "Hot Dogs", "Corn", "Tomatoes"},
	"fall":   {"Pumpkin", "Apples", "Cinnamon", "Hot Chocolate", "Soup"},
	"winter": {"Hot Chocolate", "Soup", "Oranges", "Tea", "Cranberries"},
}

// timeOfDay lists the pattern groups shoppers pick from at each time.
var timeOfDay = map[string][]string{
	"morning":   {"breakfast", "snacking", "impulse"},
	"afternoon": {"quick_meal", "snacking", "household_shopping"},
	"evening":   {"dinner_italian", "dinner_american", "dinner_mexican", "dinner_asian", "salad"},
	"night":     {"snacking", "impulse", "quick_meal"},
}
