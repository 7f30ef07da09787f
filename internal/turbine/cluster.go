package turbine

import (
	"fmt"
	"math"

	"wind_simulator/internal/curve"
)

// Cluster groups several wind farms. For power output purposes a
// cluster is reduced the same way a farm is: each farm is first reduced
// to its own equivalent curve and mean hub height, then the farms are
// aggregated by the same pointwise-sum rule as turbines in a fleet.
type Cluster struct {
	name  string
	farms []*Farm
}

// NewCluster validates and builds a cluster descriptor.
func NewCluster(name string, farms []*Farm) (*Cluster, error) {
	if len(farms) == 0 {
		return nil, fmt.Errorf("%w: cluster %q has no farms", ErrInvalidDescriptor, name)
	}
	for i, f := range farms {
		if f == nil {
			return nil, fmt.Errorf("%w: cluster %q farm %d is nil", ErrInvalidDescriptor, name, i)
		}
	}
	return &Cluster{name: name, farms: append([]*Farm(nil), farms...)}, nil
}

// Name returns the cluster name.
func (c *Cluster) Name() string { return c.name }

// Farms returns a copy of the member farms.
func (c *Cluster) Farms() []*Farm {
	return append([]*Farm(nil), c.farms...)
}

// NominalPower returns the installed capacity of all member farms in W.
func (c *Cluster) NominalPower() float64 {
	var total float64
	for _, f := range c.farms {
		total += f.NominalPower()
	}
	return total
}

// MeanHubHeight returns the capacity-weighted logarithmic mean of the
// member farms' mean hub heights.
func (c *Cluster) MeanHubHeight() float64 {
	var logSum float64
	for _, f := range c.farms {
		logSum += math.Log(f.MeanHubHeight()) * f.NominalPower()
	}
	return math.Exp(logSum / c.NominalPower())
}

// AssignPowerCurve reduces each farm to its equivalent curve and sums
// the farm curves on their union grid, producing one cluster curve.
func (c *Cluster) AssignPowerCurve(opts AggregationOptions) (curve.Curve, error) {
	farmCurves := make([]curve.Curve, 0, len(c.farms))
	for _, f := range c.farms {
		fc, err := f.AssignPowerCurve(opts)
		if err != nil {
			return curve.Curve{}, err
		}
		farmCurves = append(farmCurves, fc)
	}
	clusterCurve, err := curve.Sum(farmCurves)
	if err != nil {
		return curve.Curve{}, fmt.Errorf("aggregating cluster %q: %w", c.name, err)
	}
	return clusterCurve, nil
}

// HasEfficiency reports whether any member farm has a configured
// wake-loss efficiency.
func (c *Cluster) HasEfficiency() bool {
	for _, f := range c.farms {
		if f.HasEfficiency() {
			return true
		}
	}
	return false
}
