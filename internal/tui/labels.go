package tui

var labels = map[string]map[string]string{
	"ru": {
		"app":            "Аудиогид",
		"tours":          "Маршруты",
		"free_roam":      "Свободная прогулка",
		"rewards":        "Награды",
		"settings":       "Настройки",
		"map":            "Карта",
		"loading":        "Загрузка каталога…",
		"load_failed":    "Не удалось загрузить каталог",
		"no_tours":       "Маршрутов пока нет",
		"no_stops":       "Ничего не найдено",
		"stops":          "точек",
		"point_of":       "Точка %d из %d",
		"audio":          "Аудио",
		"autoplay":       "воспроизводится автоматически",
		"points":         "Очки",
		"streak":         "Серия",
		"days":           "дн.",
		"visited":        "Посещено",
		"unlocked":       "Разблокированные",
		"locked":         "Доступно для разблокировки",
		"route_computed": "пешеходный маршрут",
		"route_fallback": "запасной маршрут",
		"route_pending":  "строим маршрут…",
		"route_none":     "маршрут не построен",
		"notifications":  "Уведомления",
		"sound":          "Звуковые эффекты",
		"auto_play":      "Автовоспроизведение аудио",
		"language":       "Язык",
		"theme":          "Тема",
		"on":             "вкл",
		"off":            "выкл",
		"new_reward":     "Новая награда",
		"search_hint":    "Название, описание или адрес",
	},
	"en": {
		"app":            "Audio guide",
		"tours":          "Tours",
		"free_roam":      "Free roam",
		"rewards":        "Rewards",
		"settings":       "Settings",
		"map":            "Map",
		"loading":        "Loading catalog…",
		"load_failed":    "Could not load the catalog",
		"no_tours":       "No tours yet",
		"no_stops":       "Nothing found",
		"stops":          "stops",
		"point_of":       "Point %d of %d",
		"audio":          "Audio",
		"autoplay":       "plays automatically",
		"points":         "Points",
		"streak":         "Streak",
		"days":           "days",
		"visited":        "Visited",
		"unlocked":       "Unlocked",
		"locked":         "Available to unlock",
		"route_computed": "walking route",
		"route_fallback": "fallback route",
		"route_pending":  "computing route…",
		"route_none":     "no route",
		"notifications":  "Notifications",
		"sound":          "Sound effects",
		"auto_play":      "Auto-play audio",
		"language":       "Language",
		"theme":          "Theme",
		"on":             "on",
		"off":            "off",
		"new_reward":     "New reward",
		"search_hint":    "Name, description or address",
	},
}

// tr looks up key for lang, falling back to Russian and then to key itself.
func tr(lang, key string) string {
	if s, ok := labels[lang][key]; ok {
		return s
	}
	if s, ok := labels["ru"][key]; ok {
		return s
	}
	return key
}
