package catalog

import "github.com/shopspring/decimal"

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// Default returns the built-in restaurant catalog.
func Default() []Restaurant {
	return []Restaurant{
		{
			ID:           "1",
			Name:         "¡Hasta la Vuelta!, Señor",
			Cuisine:      "Tipica",
			Description:  "Descubrir el sabor típico de Quito, es rescatar del tiempo sus tradiciones, raíces y leyendas",
			Address:      "Chile Oe 456, Quito 170401",
			Image:        "assets/restaurants/hasta-la-vuelta.jpg",
			Promo:        "Por la compra de un plato, el segundo a mitad de precio!!",
			Rating:       4.7,
			DeliveryTime: "25-40 min",
			Menu: []MenuItem{
				{ID: "1", Name: "Fanesca", Description: "Plato tradicional ecuatoriano, un potaje que se prepara principalmente durante la Semana Santa", Price: price("12.99"), Image: "assets/food/fanesca.jpg", Category: "Tipico"},
				{ID: "2", Name: "Estofado de Carne", Description: "Arroz, comida típica ecuatoriana, con carne de res, papas y zanahorias", Price: price("14.99"), Image: "assets/food/estofado-de-carne.jpg", Category: "Tipico"},
				{ID: "3", Name: "Fritada", Description: "Deliciosa fritada de cerdo con mote y llapingachos", Price: price("13.99"), Image: "assets/food/fritada.jpg", Category: "Fritada"},
				{ID: "4", Name: "Churrasco", Description: "Huevos, carne de res, plátano maduro y aguacate", Price: price("4.99"), Image: "assets/food/churrasco.jpg", Category: "Tipico"},
				{ID: "5", Name: "Empanadas", Description: "Empanadas de carne, pollo o queso, acompañadas de ají", Price: price("5.99"), Image: "assets/food/empanadas.jpg", Category: "Empanadas"},
				{ID: "6", Name: "Seco de Chivo", Description: "Chivo guisado con especias, acompañado de arroz y plátano", Price: price("5.99"), Image: "assets/food/seco-de-chivo.jpg", Category: "Secos"},
			},
		},
		{
			ID:           "2",
			Name:         "Las Menestras de la Almagro",
			Cuisine:      "Asados",
			Description:  "Restaurante especializado en platos de carne asada y fritos",
			Address:      "Av. Almagro y Colón, Quito 170143",
			Image:        "assets/restaurants/las-menestras.jpg",
			Promo:        "3x2 en platos de carne",
			Rating:       4.5,
			DeliveryTime: "30-45 min",
			Menu: []MenuItem{
				{ID: "7", Name: "Menestra con Carne", Description: "Menestra de lenteja con carne asada, arroz y patacones", Price: price("8.99"), Image: "assets/food/menestra-carne.jpg", Category: "Asados"},
				{ID: "8", Name: "Menestra con Pollo", Description: "Menestra de fréjol con pollo a la plancha, arroz y ensalada", Price: price("7.99"), Image: "assets/food/menestra-pollo.jpg", Category: "Asados"},
				{ID: "9", Name: "Parrillada Mixta", Description: "Carne, pollo y chorizo a la parrilla con guarniciones", Price: price("15.99"), Image: "assets/food/parrillada.jpg", Category: "Parrilla"},
				{ID: "10", Name: "Chuleta Asada", Description: "Chuleta de cerdo asada con arroz, menestra y maduro", Price: price("9.49"), Image: "assets/food/chuleta.jpg", Category: "Asados"},
			},
		},
		{
			ID:           "3",
			Name:         "Pizzería Il Forno",
			Cuisine:      "Italiana",
			Description:  "Pizza artesanal al horno de leña y pastas caseras",
			Address:      "Av. Amazonas N24-03, Quito 170135",
			Image:        "assets/restaurants/il-forno.jpg",
			Rating:       4.6,
			DeliveryTime: "20-35 min",
			Menu: []MenuItem{
				{ID: "11", Name: "Pizza Margherita", Description: "Salsa de tomate, mozzarella fresca y albahaca", Price: price("10.99"), Image: "assets/food/margherita.jpg", Category: "Pizzas"},
				{ID: "12", Name: "Pizza Pepperoni", Description: "Pepperoni, mozzarella y orégano", Price: price("12.49"), Image: "assets/food/pepperoni.jpg", Category: "Pizzas"},
				{ID: "13", Name: "Lasagna de Carne", Description: "Capas de pasta con ragú de carne y bechamel", Price: price("11.99"), Image: "assets/food/lasagna.jpg", Category: "Pastas"},
				{ID: "14", Name: "Tiramisú", Description: "Postre clásico italiano con café y mascarpone", Price: price("5.49"), Image: "assets/food/tiramisu.jpg", Category: "Postres"},
			},
		},
	}
}
