package seeds

import (
	demoClass "schoolops_backend/internals/seeds/classes/demo_class"

	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB) {

	//* Kelas demo (silabus + pola mingguan)
	demoClass.SeedDemoClassesFromJSON(db, "internals/seeds/classes/demo_class/data_demo_classes.json")

}
