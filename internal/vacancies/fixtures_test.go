package vacancies

func ptr(f float64) *float64 { return &f }

func vac(id, title, company, province string, quota, registered int, skills ...string) Vacancy {
	return Vacancy{
		PositionID: id,
		Title:      title,
		Company:    company,
		Province:   province,
		Quota:      quota,
		Registered: registered,
		Skills:     skills,
	}
}

// sampleRecords covers a zero quota posting, a ratio above the default
// ceiling and a category the classifier does not know.
func sampleRecords() []Vacancy {
	farmer := vac("5", "Petani Muda", "PT D", "Bali", 5, 5, "excel", "sql")
	farmer.Category = "Pertanian"
	return []Vacancy{
		vac("1", "Data Analyst", "PT A", "Jawa Barat", 2, 10, "sql", "python"),
		vac("2", "Web Developer", "PT B", "Jawa Barat", 4, 4, "javascript", "SQL"),
		vac("3", "Staf Gudang", "PT C", "DKI Jakarta", 0, 0),
		vac("4", "Admin Data", "PT A", "DKI Jakarta", 1, 30, "excel"),
		farmer,
	}
}

func keysOf(items []Enriched) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = v.ID
	}
	return out
}
