package seeders

import "elkarec/pkg/constants"

type demoTransition struct {
	Status      constants.MaintenanceStatus
	Description string
}

type demoEquipment struct {
	Tag          string
	Location     string
	Sector       constants.Sector
	Type         string
	Manufacturer string
	Model        string
	SerialNumber string
	PurchaseDate string
	Notes        string
	Transitions  []demoTransition
}

var demoEquipmentData = []demoEquipment{
	{
		Tag: "CAM-01", Location: "Studio A", Sector: constants.SectorBroadcast,
		Type: "Caméra", Manufacturer: "Sony", Model: "PXW-Z750",
		SerialNumber: "SN-Z750-0001", PurchaseDate: "2022-03-14",
		Transitions: []demoTransition{
			{constants.StatusAReviser, "Bruit sur le capteur, à vérifier"},
			{constants.StatusEnMaintenance, "Envoyée au SAV Sony"},
		},
	},
	{
		Tag: "CAM-02", Location: "Studio B", Sector: constants.SectorBroadcast,
		Type: "Caméra", Manufacturer: "Panasonic", Model: "AK-UC4000",
	},
	{
		Tag: "MIX-01", Location: "Régie 1", Sector: constants.SectorBroadcast,
		Type: "Mélangeur vidéo", Manufacturer: "Blackmagic", Model: "ATEM Constellation 8K",
		Notes: "Firmware 9.4",
	},
	{
		Tag: "SPK-01", Location: "Entrepôt", Sector: constants.SectorEvenementiel,
		Type: "Enceinte", Manufacturer: "L-Acoustics", Model: "K2",
		Transitions: []demoTransition{
			{constants.StatusHS, "Membrane percée après le concert du 12"},
		},
	},
	{
		Tag: "LGT-01", Location: "Entrepôt", Sector: constants.SectorEvenementiel,
		Type: "Projecteur", Manufacturer: "Robe", Model: "MegaPointe",
	},
	{
		Tag: "SRV-01", Location: "Salle serveurs", Sector: constants.SectorInformatique,
		Type: "Serveur", Manufacturer: "Dell", Model: "PowerEdge R750",
		SerialNumber: "7XK2L93", PurchaseDate: "2021-11-02",
	},
	{
		Tag: "NAS-01", Location: "Salle serveurs", Sector: constants.SectorInformatique,
		Type: "Stockage", Manufacturer: "Synology", Model: "RS3621xs+",
		Transitions: []demoTransition{
			{constants.StatusAReviser, "Disque 3 en état dégradé"},
		},
	},
}
