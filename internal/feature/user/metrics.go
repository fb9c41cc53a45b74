package user

import "github.com/prometheus/client_golang/prometheus"

var (
	userCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "user_created_total",
		Help: "Number of users created",
	})
	userUpdatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "user_updated_total",
		Help: "Number of user updates",
	})
	statusChangedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "user_status_changed_total",
		Help: "Number of status changes",
	})
)

func init() {
	prometheus.MustRegister(userCreatedTotal, userUpdatedTotal, statusChangedTotal)
}

// PromObserver 业务计数器；挂在 service 上，失败/缺席不影响业务
type PromObserver struct{}

func (PromObserver) UserCreated()   { userCreatedTotal.Inc() }
func (PromObserver) UserUpdated()   { userUpdatedTotal.Inc() }
func (PromObserver) StatusChanged() { statusChangedTotal.Inc() }
