package response

import (
	"sort"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/resources/armsubscriptions"
	"github.com/elC0mpa/ec2-observe/model"
	"github.com/elC0mpa/ec2-observe/service/costs"
	"github.com/elC0mpa/ec2-observe/service/waste"
	"google.golang.org/api/cloudresourcemanager/v1"
)

// ConvertAccountInfo converts model.AccountInfo to response.AccountInfo
func ConvertAccountInfo(info *model.AccountInfo) *AccountInfo {
	if info == nil {
		return nil
	}
	return &AccountInfo{
		Provider:    info.Provider,
		AccountID:   info.AccountID,
		AccountName: info.AccountName,
	}
}

// ConvertProjectInfo converts a Cloud Resource Manager project
func ConvertProjectInfo(project *cloudresourcemanager.Project) *ProjectInfo {
	if project == nil {
		return nil
	}
	return &ProjectInfo{
		ProjectID:      project.ProjectId,
		Name:           project.Name,
		ProjectNumber:  project.ProjectNumber,
		LifecycleState: project.LifecycleState,
		Labels:         project.Labels,
	}
}

// ConvertSubscription converts an Azure subscription
func ConvertSubscription(sub *armsubscriptions.Subscription) *AzureSubscription {
	if sub == nil {
		return nil
	}
	resp := &AzureSubscription{}
	if sub.SubscriptionID != nil {
		resp.SubscriptionID = *sub.SubscriptionID
	}
	if sub.DisplayName != nil {
		resp.DisplayName = *sub.DisplayName
	}
	if sub.State != nil {
		resp.State = string(*sub.State)
	}
	return resp
}

// ConvertCostBreakdown converts a breakdown view
func ConvertCostBreakdown(resp model.CostBreakdownResponse) *CostBreakdown {
	groups := make([]CostGroup, 0, len(resp.Breakdowns))
	for _, b := range resp.Breakdowns {
		groups = append(groups, CostGroup{Value: b.Value, Amount: b.Amount, Percentage: b.Percentage})
	}
	return &CostBreakdown{
		Dimension: string(resp.Dimension),
		KPIs: KPIs{
			TotalMonthly:        resp.KPIs.TotalMonthly,
			DailyBurn:           resp.KPIs.DailyBurn,
			ProjectedMonth:      resp.KPIs.ProjectedMonth,
			ChangeFromLastMonth: resp.KPIs.ChangeFromLastMonth,
			ChangePercentage:    resp.KPIs.ChangePercentage,
		},
		Groups:     groups,
		DataSource: string(resp.DataSource),
		Note:       resp.Note,
	}
}

// ConvertCostTrend converts a daily trend view
func ConvertCostTrend(resp model.CostTrendResponse) *CostTrend {
	days := make([]TrendDay, 0, len(resp.Trend))
	anomalies := []string{}
	for _, p := range resp.Trend {
		days = append(days, TrendDay{Date: p.Date, Amount: p.Amount, IsAnomaly: p.IsAnomaly})
		if p.IsAnomaly {
			anomalies = append(anomalies, p.Date)
		}
	}
	return &CostTrend{
		Period: resp.Period,
		Days:   days,
		Summary: TrendSummary{
			TotalAmount:  resp.TotalAmount,
			AverageDaily: resp.AverageDaily,
			Threshold:    resp.Anomaly.Threshold,
			MaxZScore:    resp.Anomaly.ZScore,
			AnomalyDates: anomalies,
		},
		DataSource: string(resp.DataSource),
	}
}

// ConvertInstance converts a compute instance
func ConvertInstance(i model.Instance) Instance {
	return Instance{
		ID:          i.ID,
		Name:        i.Name,
		Type:        i.Type,
		Region:      i.Region,
		AccountID:   i.AccountID,
		State:       string(i.State),
		UptimeHours: i.UptimeHrs,
		CostPerHour: i.CostPerHour,
		CPUPercent:  i.CPUUtilPct,
		RAMPercent:  i.RAMUtilPct,
		GPUPercent:  i.GPUUtilPct,
		Tags:        i.Tags,
	}
}

// ConvertFilteredInstances converts the faceted instance view
func ConvertFilteredInstances(view model.FilteredInstances) *InstanceList {
	instances := make([]Instance, 0, len(view.Instances))
	for _, i := range view.Instances {
		instances = append(instances, ConvertInstance(i))
	}
	return &InstanceList{
		Instances:  instances,
		Total:      view.Summary.TotalInstances,
		Matched:    view.Summary.FilteredInstances,
		ByCategory: view.Summary.FilterBreakdown,
		DataSource: string(view.DataSource),
	}
}

// ConvertRecommendations converts a waste report, most wasteful first
func ConvertRecommendations(report model.RecommendationReport) *WasteReport {
	recs := make([]Recommendation, 0, len(report.Recommendations))
	var hourly float64
	for _, r := range report.Recommendations {
		recs = append(recs, Recommendation{
			InstanceID:   r.Instance.ID,
			InstanceName: r.Instance.Name,
			Type:         r.Instance.Type,
			Region:       r.Instance.Region,
			CostPerHour:  r.Instance.CostPerHour,
			WasteLevel:   string(r.Waste.Level),
			WasteScore:   r.Waste.Score,
			Reasons:      r.Waste.Reasons,
		})
		hourly += r.Instance.CostPerHour
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].WasteScore > recs[j].WasteScore
	})

	return &WasteReport{
		Recommendations: recs,
		HourlyWaste:     costs.Round2(hourly),
		DataSource:      string(report.DataSource),
	}
}

// ConvertTimeline converts an instance timeline
func ConvertTimeline(t model.InstanceTimeline) *Timeline {
	points := make([]TimelinePoint, 0, len(t.DataPoints))
	for _, p := range t.DataPoints {
		points = append(points, TimelinePoint{
			Timestamp:  p.Timestamp.UTC().Format(time.RFC3339),
			CPU:        p.CPU,
			RAM:        p.RAM,
			GPU:        p.GPU,
			NetworkIn:  p.NetworkIn,
			NetworkOut: p.NetworkOut,
		})
	}
	return &Timeline{
		InstanceID:   t.InstanceID,
		InstanceName: t.InstanceName,
		Period:       string(t.Period),
		Points:       points,
		Summary: TimelineSummary{
			AvgCPU:        t.Summary.AvgCPU,
			AvgRAM:        t.Summary.AvgRAM,
			AvgGPU:        t.Summary.AvgGPU,
			PeakCPU:       t.Summary.PeakCPU,
			PeakRAM:       t.Summary.PeakRAM,
			PeakGPU:       t.Summary.PeakGPU,
			IdlePercent:   t.Summary.IdleTime,
			SpikyBehavior: t.Summary.SpikyBehavior,
		},
		DataSource: string(t.DataSource),
	}
}

// ConvertCredentialCheck converts a credentials check result
func ConvertCredentialCheck(provider string, check model.CredentialCheck) *CredentialCheck {
	return &CredentialCheck{
		Provider:  provider,
		Success:   check.Success,
		Message:   check.Message,
		AccountID: check.AccountID,
		Region:    check.Region,
		Details:   check.Details,
	}
}

// ConvertFilterState converts the saved filter preferences
func ConvertFilterState(state model.FilterState) *FilterState {
	applied := make([]AppliedFilter, 0, len(state.AppliedFilters))
	for _, f := range state.AppliedFilters {
		applied = append(applied, AppliedFilter{Category: f.CategoryID, Values: f.Values})
	}
	return &FilterState{
		AppliedFilters: applied,
		ActiveCount:    state.ActiveCount(),
		PanelVisible:   state.IsVisible,
		PersistFilters: state.Behavior.PersistFilters,
	}
}

// ConvertProviderInventory converts the inventory of one provider
func ConvertProviderInventory(result model.ProviderInventoryResult) ProviderInventory {
	inv := ProviderInventory{
		Provider:  result.Provider,
		AccountID: result.AccountID,
	}
	if result.Error != nil {
		inv.Error = result.Error.Error()
		return inv
	}

	var hourly float64
	for _, i := range result.Instances {
		if i.State == model.StateRunning {
			inv.Running++
			hourly += i.CostPerHour
		}
		if waste.ScoreInstance(i).Level == model.WasteCritical {
			inv.Critical++
		}
	}
	inv.Instances = len(result.Instances)
	inv.HourlyCost = costs.Round2(hourly)
	inv.MonthlyCost = costs.Round2(costs.Total(result.Breakdown))
	for _, b := range result.Breakdown {
		inv.ByRegion = append(inv.ByRegion, CostGroup{Value: b.Value, Amount: b.Amount, Percentage: b.Percentage})
	}
	return inv
}

// ConvertMultiCloudInventory converts a multi-cloud fan-out and totals it
func ConvertMultiCloudInventory(results []model.ProviderInventoryResult) *MultiCloudInventory {
	resp := &MultiCloudInventory{Providers: make([]ProviderInventory, 0, len(results))}
	for _, r := range results {
		inv := ConvertProviderInventory(r)
		resp.Providers = append(resp.Providers, inv)
		resp.Instances += inv.Instances
		resp.MonthlyCost += inv.MonthlyCost
	}
	resp.MonthlyCost = costs.Round2(resp.MonthlyCost)
	return resp
}
