package adapters

import (
	"maps"

	"github.com/de-tools/cost-guard/pkg/models/api"
	"github.com/de-tools/cost-guard/pkg/models/domain"
	"github.com/de-tools/cost-guard/pkg/models/store"
)

const dateLayout = "2006-01-02"

func MapCostDomainToStore(c domain.CostRecord) store.CostRow {
	return store.CostRow{
		Cloud:      c.Cloud,
		Account:    c.Account,
		Product:    c.Product,
		ResourceID: c.ResourceID,
		Owner:      c.Owner,
		Date:       c.Date,
		AmountUSD:  c.AmountUSD,
	}
}

func MapCostStoreToDomain(row store.CostRow) domain.CostRecord {
	return domain.CostRecord{
		Cloud:      row.Cloud,
		Account:    row.Account,
		Product:    row.Product,
		ResourceID: row.ResourceID,
		Owner:      row.Owner,
		Date:       row.Date,
		AmountUSD:  row.AmountUSD,
	}
}

func MapCostDomainToApi(c domain.CostRecord) api.CostRecord {
	return api.CostRecord{
		Cloud:      c.Cloud,
		Account:    c.Account,
		Product:    c.Product,
		ResourceID: c.ResourceID,
		Owner:      c.Owner,
		Date:       c.Date.Format(dateLayout),
		AmountUSD:  c.AmountUSD,
	}
}

func MapUtilDomainToStore(s domain.UtilSample) store.UtilRow {
	return store.UtilRow{
		ResourceID: s.ResourceID,
		Metric:     s.Metric,
		HourTS:     s.Hour,
		P50:        s.P50,
		P95:        s.P95,
	}
}

func MapUtilStoreToDomain(row store.UtilRow) domain.UtilSample {
	return domain.UtilSample{
		ResourceID: row.ResourceID,
		Metric:     row.Metric,
		Hour:       row.HourTS,
		P50:        row.P50,
		P95:        row.P95,
	}
}

func MapUtilDomainToApi(s domain.UtilSample) api.UtilSample {
	return api.UtilSample{
		ResourceID: s.ResourceID,
		Metric:     s.Metric,
		Hour:       s.Hour,
		P50:        s.P50,
		P95:        s.P95,
	}
}

func MapResourceDomainToStore(r domain.Resource) store.ResourceRow {
	return store.ResourceRow{
		ResourceID:   r.ResourceID,
		Cloud:        r.Cloud,
		Type:         r.Type.String(),
		Name:         r.Name,
		State:        r.State,
		Account:      r.Account,
		Region:       r.Region,
		InstanceType: r.InstanceType,
		Tags:         maps.Clone(r.Tags),
	}
}

func MapResourceStoreToDomain(row store.ResourceRow) (domain.Resource, error) {
	resourceType, err := domain.ParseResourceType(row.Type)
	if err != nil {
		return domain.Resource{}, err
	}
	return domain.Resource{
		ResourceID:   row.ResourceID,
		Cloud:        row.Cloud,
		Type:         resourceType,
		Name:         row.Name,
		State:        row.State,
		Account:      row.Account,
		Region:       row.Region,
		InstanceType: row.InstanceType,
		Tags:         maps.Clone(row.Tags),
	}, nil
}

func MapResourceDomainToApi(r domain.Resource) api.Resource {
	return api.Resource{
		ResourceID:   r.ResourceID,
		Cloud:        r.Cloud,
		Type:         r.Type.String(),
		Name:         r.Name,
		State:        r.State,
		Account:      r.Account,
		Region:       r.Region,
		InstanceType: r.InstanceType,
		Tags:         maps.Clone(r.Tags),
	}
}

func MapResourceDetailDomainToApi(d domain.ResourceDetail) api.ResourceDetail {
	costs := make([]api.CostRecord, 0, len(d.CostHistory))
	for _, c := range d.CostHistory {
		costs = append(costs, MapCostDomainToApi(c))
	}
	samples := make([]api.UtilSample, 0, len(d.Utilization))
	for _, s := range d.Utilization {
		samples = append(samples, MapUtilDomainToApi(s))
	}
	return api.ResourceDetail{
		Resource:    MapResourceDomainToApi(d.Resource),
		CostHistory: costs,
		Utilization: samples,
	}
}
