package verification

import (
	"context"
	"log/slog"
	"time"

	"github.com/bluetoken/bluedeploy/internal/domain"
	"github.com/bluetoken/bluedeploy/internal/domain/models"
	"github.com/bluetoken/bluedeploy/internal/usecase"
	"golang.org/x/sync/errgroup"
)

// DefaultSubmitTimeout bounds a single background verification
const DefaultSubmitTimeout = 5 * time.Minute

// Background runs verifications off the deploy path. Failures are logged and
// never reach the caller; Wait only drains the queue.
type Background struct {
	verifier usecase.ContractVerifier
	repo     usecase.DeploymentRepository
	timeout  time.Duration
	log      *slog.Logger
	group    errgroup.Group

	// ctx parents every submitted verification; cancel aborts them all
	ctx    context.Context
	cancel context.CancelFunc
}

var _ usecase.AsyncVerifier = (*Background)(nil)

// NewBackground creates a background verifier. Results are written back to
// repo when it is set.
func NewBackground(verifier usecase.ContractVerifier, repo usecase.DeploymentRepository, log *slog.Logger) *Background {
	ctx, cancel := context.WithCancel(context.Background())
	return &Background{
		verifier: verifier,
		repo:     repo,
		timeout:  DefaultSubmitTimeout,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Submit queues the deployment for verification and returns immediately
func (b *Background) Submit(deployment *models.Deployment, network *domain.Network) {
	name := deployment.Name
	target := *deployment
	if deployment.ProxyInfo != nil {
		info := *deployment.ProxyInfo
		target.ProxyInfo = &info
	}

	b.log.Info("verification submitted", "deployment", name, "address", target.Address, "network", network.Name)
	b.group.Go(func() error {
		ctx, cancel := context.WithTimeout(b.ctx, b.timeout)
		defer cancel()

		info, err := b.verifier.Verify(ctx, &target, network)
		if err != nil {
			b.log.Warn("verification failed", "deployment", name, "error", err)
		} else {
			b.log.Info("verified", "deployment", name, "url", info.URL)
		}
		if info != nil {
			b.record(ctx, name, *info)
		}
		return nil
	})
}

func (b *Background) record(ctx context.Context, name string, info models.VerificationInfo) {
	if b.repo == nil {
		return
	}
	current, err := b.repo.GetDeployment(ctx, name)
	if err != nil {
		b.log.Debug("verification result not recorded", "deployment", name, "error", err)
		return
	}
	current.Verification = info
	current.UpdatedAt = time.Now().UTC()
	if err := b.repo.SaveDeployment(ctx, current); err != nil {
		b.log.Warn("failed to record verification", "deployment", name, "error", err)
	}
}

// Wait blocks until every submitted verification has finished. When ctx is
// cancelled first, the running verifications are cancelled and Wait returns
// once they have unwound.
func (b *Background) Wait(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		_ = b.group.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		b.log.Warn("aborting pending verifications", "error", ctx.Err())
		b.cancel()
		<-done
	}
}
