package catalog

var seedCategories = []ProductCategory{
	{ID: "celebration", Name: "Para Celebrar", Description: "Desayunos especiales para festejar momentos únicos", Icon: "🎉"},
	{ID: "romantic", Name: "Románticos", Description: "Perfectos para sorprender a esa persona especial", Icon: "❤️"},
	{ID: "healthy", Name: "Saludables", Description: "Opciones nutritivas para comenzar el día", Icon: "🥗"},
	{ID: "boxes", Name: "Cajas de Desayuno", Description: "Experiencias completas en una caja especial", Icon: "📦"},
}

var seedOptions = []Option{
	{ID: "tea-1", Category: HotBeverage, Name: "Café de Altura Premium"},
	{ID: "tea-2", Category: HotBeverage, Name: "Té Verde con Jazmín"},
	{ID: "tea-3", Category: HotBeverage, Name: "Café Mocha con Canela"},
	{ID: "tea-4", Category: HotBeverage, Name: "Té Chai Especiado"},

	{ID: "juice-1", Category: ColdBeverage, Name: "Jugo de Naranja y Zanahoria"},
	{ID: "juice-2", Category: ColdBeverage, Name: "Jugo Verde Detox"},
	{ID: "juice-3", Category: ColdBeverage, Name: "Jugo de Frutos Rojos"},
	{ID: "juice-4", Category: ColdBeverage, Name: "Jugo Tropical de Mango y Maracuyá"},

	{ID: "cake-1", Category: Cake, Name: "Red Velvet"},
	{ID: "cake-2", Category: Cake, Name: "Torta de Zanahoria con Frosting"},
	{ID: "cake-3", Category: Cake, Name: "Cheesecake de Frutos del Bosque"},
	{ID: "cake-4", Category: Cake, Name: "Torta de Chocolate Belga"},
}

var seedProducts = []Product{
	{
		ID: "1", Slug: "desayuno-cumpleanos-simple", CategoryID: "celebration", Category: "Para Celebrar",
		Name:        "Desayuno Cumpleaños Simple",
		Description: "Celebra con waffles decorados, huevos revueltos, bacon y jugo natural.",
		Price:       29990,
		Image:       "https://images.unsplash.com/photo-1528207776546-365bb710ee93?w=800",
		Type:        TypeSimple,
		Featured:    true,
	},
	{
		ID: "2", Slug: "desayuno-cumpleanos-full", CategoryID: "celebration", Category: "Para Celebrar",
		Name:        "Desayuno Cumpleaños Full",
		Description: "La experiencia completa de cumpleaños con decoración especial.",
		Price:       39990,
		Image:       "https://images.unsplash.com/photo-1528207776546-365bb710ee93?w=800",
		Type:        TypeDouble,
	},
	{
		ID: "3", Slug: "desayuno-romantico-para-2", CategoryID: "romantic", Category: "Románticos",
		Name:        "Desayuno Romántico (Para 2)",
		Description: "Perfecto para sorprender a esa persona especial con pancakes en forma de corazón.",
		Price:       44990,
		Image:       "https://images.unsplash.com/photo-1513442542250-854d436a73f2?w=800",
		Type:        TypeDouble,
		Featured:    true,
	},
	{
		ID: "4", Slug: "bowl-energetico", CategoryID: "healthy", Category: "Saludables",
		Name:        "Bowl Energético",
		Description: "Bowl de açaí, granola casera, frutas frescas y yogurt griego.",
		Price:       19990,
		Image:       "https://images.unsplash.com/photo-1511690743698-d9d85f2fbf38?w=800",
		Type:        TypeBowl,
	},
	{
		ID: "5", Slug: "brunch-familiar-para-2", CategoryID: "boxes", Category: "Cajas de Desayuno",
		Name:        "Brunch Familiar (Para 2)",
		Description: "Completo brunch con huevos benedictinos, salmón ahumado y café.",
		Price:       49990,
		Image:       "https://images.unsplash.com/photo-1504754524776-8f4f37790ca0?w=800",
		Type:        TypeDouble,
		Featured:    true,
	},
	{
		ID: "6", Slug: "despertar-saludable", CategoryID: "healthy", Category: "Saludables",
		Name:        "Despertar Saludable",
		Description: "Tostadas de aguacate, huevos pochados y jugo verde detox.",
		Price:       24990,
		Image:       "https://images.unsplash.com/photo-1525351484163-7529414344d8?w=800",
		Type:        TypeSimple,
	},
	{
		ID: "7", Slug: "bowl-tropical", CategoryID: "healthy", Category: "Saludables",
		Name:        "Bowl Tropical",
		Description: "Bowl de mango, piña, coco rallado, chía y granola tropical.",
		Price:       21990,
		Image:       "https://images.unsplash.com/photo-1494597564530-871f2b93ac55?w=800",
		Type:        TypeBowl,
	},
	{
		ID: "8", Slug: "desayuno-ejecutivo-para-2", CategoryID: "boxes", Category: "Cajas de Desayuno",
		Name:        "Desayuno Ejecutivo (Para 2)",
		Description: "Selección premium de croissants, quesos y jamón serrano.",
		Price:       46990,
		Image:       "https://images.unsplash.com/photo-1533089860892-a7c6f0a88666?w=800",
		Type:        TypeDouble,
	},
	{
		ID: "9", Slug: "despertar-dulce", CategoryID: "boxes", Category: "Cajas de Desayuno",
		Name:        "Despertar Dulce",
		Description: "French toast con frutas del bosque y sirope de maple.",
		Price:       26990,
		Image:       "https://images.unsplash.com/photo-1484723091739-30a097e8f929?w=800",
		Type:        TypeSimple,
	},
	{
		ID: "10", Slug: "bowl-mediterraneo", CategoryID: "healthy", Category: "Saludables",
		Name:        "Bowl Mediterráneo",
		Description: "Bowl de yogurt griego, higos, miel, nueces y granola artesanal.",
		Price:       23990,
		Image:       "https://images.unsplash.com/photo-1511690078903-71dc5a49f5e3?w=800",
		Type:        TypeBowl,
	},
}

var seedCatering = []CateringItem{
	{
		ID:          "mini-sandwiches",
		Name:        "Mini Sandwiches Surtidos",
		Description: "Pan de miga, ave mayo, jamón queso y vegetariano.",
		Type:        CateringSavory,
		Options: []CateringOption{
			{Name: "25 unidades", Price: 17990},
			{Name: "50 unidades", Price: 32990},
			{Name: "100 unidades", Price: 62990},
		},
	},
	{
		ID:          "mini-dulces",
		Name:        "Mini Dulces de Fiesta",
		Description: "Alfajores, brownies y mini cheesecakes.",
		Type:        CateringSweet,
		Options: []CateringOption{
			{Name: "30 unidades", Price: 19990},
			{Name: "60 unidades", Price: 36990},
		},
	},
}
