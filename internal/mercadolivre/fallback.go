package mercadolivre

// FallbackProducts 上游不可用时的兜底商品列表
func FallbackProducts() []Product {
	return []Product{
		{
			ID:                "mlb-fallback-1",
			Title:             "Reparo de Celular - MJ TECH",
			Description:       "Conserto profissional de smartphones com garantia e peças de qualidade",
			Image:             "https://images.unsplash.com/photo-1563013544-824ae1b704d3?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&q=80",
			Price:             "R$ 99,90",
			OldPrice:          "R$ 149,90",
			Discount:          "33% OFF",
			Link:              "https://wa.me/5519995189387?text=Olá! Gostaria de informações sobre reparo de celular",
			Condition:         "Serviço",
			AvailableQuantity: 999,
			SoldQuantity:      150,
			FreeShipping:      false,
			Category:          "SERVIÇOS",
		},
		{
			ID:                "mlb-fallback-2",
			Title:             "Manutenção de Notebook - MJ TECH",
			Description:       "Limpeza interna, formatação e otimização para notebooks e computadores",
			Image:             "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&q=80",
			Price:             "R$ 129,90",
			OldPrice:          "R$ 179,90",
			Discount:          "28% OFF",
			Link:              "https://wa.me/5519995189387?text=Olá! Gostaria de informações sobre manutenção de notebook",
			Condition:         "Serviço",
			AvailableQuantity: 999,
			SoldQuantity:      89,
			FreeShipping:      false,
			Category:          "SERVIÇOS",
		},
		{
			ID:                "mlb-fallback-3",
			Title:             "Mouse Gamer MJ TECH Edition",
			Description:       "Mouse gamer com design exclusivo MJ TECH, RGB e 16000 DPI",
			Image:             "https://images.unsplash.com/photo-1527814050087-3793815479db?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&q=80",
			Price:             "R$ 79,90",
			OldPrice:          "R$ 119,90",
			Discount:          "33% OFF",
			Link:              "https://wa.me/5519995189387?text=Olá! Gostaria de informações sobre o mouse gamer",
			Condition:         "Novo",
			AvailableQuantity: 25,
			SoldQuantity:      42,
			FreeShipping:      true,
			Category:          "PERIFÉRICOS",
		},
		{
			ID:                "mlb-fallback-4",
			Title:             "Teclado Mecânico MJ TECH Pro",
			Description:       "Teclado mecânico com switches Outemu Blue e iluminação RGB",
			Image:             "https://images.unsplash.com/photo-1541140532154-b024d705b90a?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&q=80",
			Price:             "R$ 189,90",
			OldPrice:          "R$ 279,90",
			Discount:          "32% OFF",
			Link:              "https://wa.me/5519995189387?text=Olá! Gostaria de informações sobre o teclado mecânico",
			Condition:         "Novo",
			AvailableQuantity: 18,
			SoldQuantity:      31,
			FreeShipping:      true,
			Category:          "PERIFÉRICOS",
		},
	}
}
