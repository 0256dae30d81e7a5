package cron

import (
	"context"
	"time"

	"github.com/shiftwise/workforce-backend-go/internal/config"
	"github.com/shiftwise/workforce-backend-go/internal/domain/payroll"
)

// PayrollJobs wires the payroll engine into the scheduler: open cycles
// whose end date has passed get processed without operator action.
type PayrollJobs struct {
	payrollService payroll.PayrollService
	interval       time.Duration
}

func NewPayrollJobs(payrollService payroll.PayrollService, cfg config.PayrollConfig) *PayrollJobs {
	return &PayrollJobs{
		payrollService: payrollService,
		interval:       cfg.ProcessInterval,
	}
}

func (j *PayrollJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("process_due_payroll_cycles", j.interval, j.ProcessDueCycles)
}

func (j *PayrollJobs) ProcessDueCycles(ctx context.Context) error {
	return j.payrollService.ProcessDueCycles(ctx)
}
