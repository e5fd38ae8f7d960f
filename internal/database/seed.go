package database

import (
	"log"
	"time"

	"naturtim-backend/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Dane referencyjne zakładu. Seed jest idempotentny (FirstOrCreate),
// więc można go puszczać przy każdym starcie serwera.

var seedPermissions = []models.Permission{
	{Name: "Dashboard", Href: "/workspace/dashboard", Description: "Dostęp do panelu głównego"},
	{Name: "Harmonogram", Href: "/workspace/harmonogram", Description: "Dostęp do modułu Harmonogram"},
	{Name: "Kontrola Jakości", Href: "/workspace/kontrola-jakosci", Description: "Dostęp do modułu Kontrola Jakości"},
	{Name: "Obsluga Zamowien", Href: "/workspace/obsluz-zamowienia", Description: "Dostęp do modułu Obsluga Zamowien"},
	{Name: "Przyjecia Dostawy", Href: "/workspace/przyjecia-dostawy", Description: "Dostęp do modułu Przyjecia Dostawy"},
	{Name: "Wykres", Href: "/workspace/wykres", Description: "Dostęp do modułu Wykres"},
	{Name: "Zdarzenia", Href: "/workspace/zdarzenia", Description: "Dostęp do modułu Zdarzenia"},
	{Name: "Pracownicy", Href: "/workspace/pracownicy", Description: "Dostęp do modułu Pracownicy"},
	{Name: "Magazyny", Href: "/workspace/magazyny", Description: "Dostęp do modułu Magazyny"},
	{Name: "Dostawcy", Href: "/workspace/dostawcy", Description: "Dostęp do modułu Dostawcy"},
	{Name: "Odbiorcy", Href: "/workspace/odbiorcy", Description: "Dostęp do modułu Odbiorcy"},
	{Name: "Produkty", Href: "/workspace/produkty", Description: "Dostęp do modułu Produkty"},
	{Name: "Frakcje", Href: "/workspace/frakcje", Description: "Dostęp do modułu Frakcje"},
}

var seedWarehouses = []models.Warehouse{
	{Name: "Mroźnia", Description: "Magazyn zamrożonych produktów przed liofilizacją"},
	{Name: "Półfabrykat", Description: "Magazyn produktów po liofilizacji, przed podziałem na frakcje"},
	{Name: "Gotowy produkt", Description: "Magazyn gotowych produktów po kontroli jakości"},
	{Name: "Kartony", Description: "Magazyn opakowań"},
}

var seedMachines = []models.Machine{
	{Name: "TG15", Color: "#FF5252"},
	{Name: "TG50/1", Color: "#7C4DFF"},
	{Name: "TG50/2", Color: "#448AFF"},
	{Name: "LV16", Color: "#69F0AE"},
	{Name: "LV17", Color: "#FFD740"},
	{Name: "LV18", Color: "#FF6E40"},
	{Name: "LV20", Color: "#EC407A"},
}

var seedFractions = []models.Fraction{
	{Name: "Cały owoc", Description: "Produkt w całości, bez cięcia"},
	{Name: "Grys", Description: "Produkt rozdrobniony na drobne kawałki"},
	{Name: "Kostka", Description: "Produkt pokrojony w kostki"},
	{Name: "Plaster", Description: "Produkt pokrojony w plastry"},
	{Name: "1/2 plastra", Description: "Produkt pokrojony w połówki plastrów"},
	{Name: "1/4 plastra", Description: "Produkt pokrojony w ćwiartki plastrów"},
	{Name: "Proszek", Description: "Produkt zmielony na proszek"},
	{Name: "Segmenty", Description: "Produkt podzielony na naturalne segmenty"},
}

var seedStatuses = []models.BatchStatus{
	{Name: "Przyjęta"},
	{Name: "W liofilizacji"},
	{Name: "Po liofilizacji"},
	{Name: "Zakończona"},
}

func Seed(db *gorm.DB) error {
	for _, p := range seedPermissions {
		if err := db.Where("name = ?", p.Name).FirstOrCreate(&models.Permission{}, p).Error; err != nil {
			return err
		}
	}

	for _, w := range seedWarehouses {
		rec := models.Warehouse{Name: w.Name, Description: w.Description, LastInventoryDate: time.Now()}
		if err := db.Where("name = ?", w.Name).FirstOrCreate(&models.Warehouse{}, rec).Error; err != nil {
			return err
		}
	}

	for _, m := range seedMachines {
		if err := db.Where("name = ?", m.Name).FirstOrCreate(&models.Machine{}, m).Error; err != nil {
			return err
		}
	}

	for _, f := range seedFractions {
		if err := db.Where("name = ?", f.Name).FirstOrCreate(&models.Fraction{}, f).Error; err != nil {
			return err
		}
	}

	for _, s := range seedStatuses {
		if err := db.Where("name = ?", s.Name).FirstOrCreate(&models.BatchStatus{}, s).Error; err != nil {
			return err
		}
	}

	return seedAdmin(db)
}

// seedAdmin zakłada konto administratora z kompletem uprawnień,
// ale tylko gdy tabela użytkowników jest pusta.
func seedAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var perms []models.Permission
	if err := db.Find(&perms).Error; err != nil {
		return err
	}

	admin := models.User{
		Login:       "admin",
		Password:    string(hash),
		Username:    "Administrator",
		UserSurname: "System",
		Permissions: perms,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Utworzono domyślne konto administratora (login: admin). Zmień hasło po pierwszym logowaniu.")
	return nil
}
