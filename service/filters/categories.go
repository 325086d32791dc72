package filters

import "github.com/elC0mpa/ec2-observe/model"

var categoryIDs = []string{
	model.CategoryRegion,
	model.CategoryInstanceType,
	model.CategoryState,
	model.CategoryWasteLevel,
	model.CategoryEnvironment,
	model.CategoryService,
}

// Categories returns the catalogue of filter facets with their predefined options
func Categories() []model.FilterCategory {
	return []model.FilterCategory{
		{
			ID:    model.CategoryRegion,
			Label: "Region",
			Options: []model.FilterOption{
				{Value: "us-east-1", Label: "US East (N. Virginia)"},
				{Value: "us-west-2", Label: "US West (Oregon)"},
				{Value: "eu-west-1", Label: "Europe (Ireland)"},
				{Value: "ap-southeast-1", Label: "Asia Pacific (Singapore)"},
			},
			MultiSelect: true,
		},
		{
			ID:    model.CategoryInstanceType,
			Label: "Instance Type",
			Options: []model.FilterOption{
				{Value: "t3.micro", Label: "t3.micro"},
				{Value: "t3.small", Label: "t3.small"},
				{Value: "t3.medium", Label: "t3.medium"},
				{Value: "t3.large", Label: "t3.large"},
				{Value: "r5.xlarge", Label: "r5.xlarge"},
				{Value: "p3.2xlarge", Label: "p3.2xlarge"},
			},
			MultiSelect: true,
			Searchable:  true,
		},
		{
			ID:    model.CategoryState,
			Label: "State",
			Options: []model.FilterOption{
				{Value: "running", Label: "Running"},
				{Value: "stopped", Label: "Stopped"},
				{Value: "terminated", Label: "Terminated"},
			},
			MultiSelect: true,
		},
		{
			ID:    model.CategoryWasteLevel,
			Label: "Waste Level",
			Options: []model.FilterOption{
				{Value: "good", Label: "Good"},
				{Value: "warning", Label: "Warning"},
				{Value: "critical", Label: "Critical"},
			},
			MultiSelect: true,
		},
		{
			ID:    model.CategoryEnvironment,
			Label: "Environment",
			Options: []model.FilterOption{
				{Value: "production", Label: "Production"},
				{Value: "staging", Label: "Staging"},
				{Value: "development", Label: "Development"},
			},
			MultiSelect: true,
		},
		{
			ID:    model.CategoryService,
			Label: "Service",
			Options: []model.FilterOption{
				{Value: "web-server", Label: "Web Server"},
				{Value: "database", Label: "Database"},
				{Value: "ml-training", Label: "ML Training"},
				{Value: "monitoring", Label: "Monitoring"},
			},
			MultiSelect: true,
			Searchable:  true,
		},
	}
}

// KnownCategory reports whether id names a filter facet
func KnownCategory(id string) bool {
	for _, known := range categoryIDs {
		if known == id {
			return true
		}
	}
	return false
}
