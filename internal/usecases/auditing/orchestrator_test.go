package auditing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creative-audit-api/internal/domain"
	"github.com/vfg2006/creative-audit-api/internal/usecases/auditing/mocks"
	"go.uber.org/mock/gomock"
)

type analyzeFunc func(ctx context.Context, creativeID string, policyID *string) (*domain.Audit, error)

func (f analyzeFunc) AnalyzeCreative(ctx context.Context, creativeID string, policyID *string) (*domain.Audit, error) {
	return f(ctx, creativeID, policyID)
}

type recordingObserver struct {
	mu        sync.Mutex
	snapshots []domain.BatchProgress
	done      chan struct{}
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{done: make(chan struct{})}
}

func (r *recordingObserver) OnBatchProgress(p domain.BatchProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshots = append(r.snapshots, p)
	if p.Done {
		close(r.done)
	}
}

func (r *recordingObserver) all() []domain.BatchProgress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.BatchProgress(nil), r.snapshots...)
}

func targetsOf(ids ...string) []domain.AnalysisTarget {
	targets := make([]domain.AnalysisTarget, 0, len(ids))
	for _, id := range ids {
		targets = append(targets, domain.AnalysisTarget{CreativeID: id, Name: id})
	}
	return targets
}

func fixedID(id string) func() (string, error) {
	return func() (string, error) { return id, nil }
}

func TestOrchestrator_Run_FalhaNoMeioNaoInterrompeLote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAnalyzer := mocks.NewMockCreativeAnalyzer(ctrl)
	mockCache := mocks.NewMockAuditCache(ctrl)
	observer := newRecordingObserver()

	orchestrator := NewOrchestrator(mockAnalyzer, mockCache, observer)
	orchestrator.newID = fixedID("JOB1")

	gomock.InOrder(
		mockAnalyzer.EXPECT().AnalyzeCreative(gomock.Any(), "C1", gomock.Any()).
			Return(&domain.Audit{ID: "A1", CreativeID: "C1"}, nil),
		mockCache.EXPECT().Put(gomock.Any(), &domain.Audit{ID: "A1", CreativeID: "C1"}).Return(nil),
		mockAnalyzer.EXPECT().AnalyzeCreative(gomock.Any(), "C2", gomock.Any()).
			Return(nil, errors.New("timeout no motor de análise")),
		mockAnalyzer.EXPECT().AnalyzeCreative(gomock.Any(), "C3", gomock.Any()).
			Return(&domain.Audit{ID: "A3", CreativeID: "C3"}, nil),
		mockCache.EXPECT().Put(gomock.Any(), &domain.Audit{ID: "A3", CreativeID: "C3"}).Return(nil),
	)

	summary, err := orchestrator.Run(context.Background(), targetsOf("C1", "C2", "C3"), "POL1")
	require.NoError(t, err)

	assert.Equal(t, "JOB1", summary.JobID)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	require.Len(t, summary.FailedItems, 1)
	assert.Equal(t, "C2", summary.FailedItems[0].Name)
	assert.Contains(t, summary.FailedItems[0].Error, "timeout")

	final, err := orchestrator.Progress("JOB1")
	require.NoError(t, err)
	assert.True(t, final.Done)
	assert.Equal(t, 3, final.Completed())
	assert.Empty(t, orchestrator.ActiveJobID())
}

func TestOrchestrator_Run_TodosOsSubconjuntosDeFalha(t *testing.T) {
	ids := []string{"C1", "C2", "C3", "C4"}

	for mask := 0; mask < 1<<len(ids); mask++ {
		t.Run(fmt.Sprintf("mascara_%04b", mask), func(t *testing.T) {
			failing := make(map[string]bool)
			var expectedFailed []string
			for i, id := range ids {
				if mask&(1<<i) != 0 {
					failing[id] = true
					expectedFailed = append(expectedFailed, id)
				}
			}

			analyzer := analyzeFunc(func(_ context.Context, creativeID string, _ *string) (*domain.Audit, error) {
				if failing[creativeID] {
					return nil, errors.New("falha remota")
				}
				return &domain.Audit{ID: "A-" + creativeID, CreativeID: creativeID}, nil
			})

			orchestrator := NewOrchestrator(analyzer, nil)
			summary, err := orchestrator.Run(context.Background(), targetsOf(ids...), "POL1")
			require.NoError(t, err)

			assert.Equal(t, len(ids), summary.Succeeded+summary.Failed)
			assert.Equal(t, len(expectedFailed), summary.Failed)

			var gotFailed []string
			for _, item := range summary.FailedItems {
				gotFailed = append(gotFailed, item.CreativeID)
			}
			assert.Equal(t, expectedFailed, gotFailed)
		})
	}
}

func TestOrchestrator_Run_OrdemFIFOEUmPorVez(t *testing.T) {
	var (
		mu       sync.Mutex
		order    []string
		inFlight int
		maxSeen  int
	)

	analyzer := analyzeFunc(func(_ context.Context, creativeID string, policyID *string) (*domain.Audit, error) {
		mu.Lock()
		inFlight++
		maxSeen = max(maxSeen, inFlight)
		order = append(order, creativeID+"@"+*policyID)
		mu.Unlock()

		time.Sleep(time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return &domain.Audit{CreativeID: creativeID}, nil
	})

	orchestrator := NewOrchestrator(analyzer, nil)
	_, err := orchestrator.Run(context.Background(), targetsOf("C3", "C1", "C2"), "POL9")
	require.NoError(t, err)

	assert.Equal(t, []string{"C3@POL9", "C1@POL9", "C2@POL9"}, order)
	assert.Equal(t, 1, maxSeen)
}

func TestOrchestrator_Snapshots(t *testing.T) {
	analyzer := analyzeFunc(func(_ context.Context, creativeID string, _ *string) (*domain.Audit, error) {
		if creativeID == "C1" {
			return nil, errors.New("formato não suportado")
		}
		return &domain.Audit{CreativeID: creativeID}, nil
	})

	observer := newRecordingObserver()
	orchestrator := NewOrchestrator(analyzer, nil, observer)

	_, err := orchestrator.Run(context.Background(), targetsOf("C1", "C2"), "POL1")
	require.NoError(t, err)

	snapshots := observer.all()
	// dois por item mais o final
	require.Len(t, snapshots, 5)

	lastCompleted := 0
	for i, s := range snapshots {
		assert.Equal(t, 2, s.Total)
		assert.GreaterOrEqual(t, s.Completed(), lastCompleted, "snapshot %d regrediu", i)
		assert.LessOrEqual(t, s.Completed(), s.Total)
		assert.Equal(t, i == len(snapshots)-1, s.Done)
		lastCompleted = s.Completed()
	}

	assert.Equal(t, 1, snapshots[0].Current)
	assert.Equal(t, "C1", snapshots[0].CurrentItemName)
	assert.Equal(t, 0, snapshots[0].Completed())
	assert.Equal(t, 2, snapshots[2].Current)

	t.Run("snapshot publicado não é alterado depois", func(t *testing.T) {
		afterFailure := snapshots[1]
		require.Len(t, afterFailure.FailedItems, 1)
		afterFailure.FailedItems[0].Name = "alterado"

		final, err := orchestrator.Progress(snapshots[len(snapshots)-1].JobID)
		require.NoError(t, err)
		assert.Equal(t, "C1", final.FailedItems[0].Name)
	})
}

func TestOrchestrator_Run_LoteVazio(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAnalyzer := mocks.NewMockCreativeAnalyzer(ctrl)
	orchestrator := NewOrchestrator(mockAnalyzer, nil)

	summary, err := orchestrator.Run(context.Background(), nil, "POL1")
	assert.ErrorIs(t, err, ErrEmptyBatch)
	assert.Nil(t, summary)
	assert.Empty(t, orchestrator.ActiveJobID())
}

func TestOrchestrator_Start_UmLotePorVez(t *testing.T) {
	release := make(chan struct{})
	analyzer := analyzeFunc(func(_ context.Context, creativeID string, _ *string) (*domain.Audit, error) {
		<-release
		return &domain.Audit{CreativeID: creativeID}, nil
	})

	observer := newRecordingObserver()
	orchestrator := NewOrchestrator(analyzer, nil, observer)
	orchestrator.newID = fixedID("JOB1")

	jobID, err := orchestrator.Start(context.Background(), targetsOf("C1"), "POL1")
	require.NoError(t, err)
	assert.Equal(t, "JOB1", jobID)
	assert.Equal(t, "JOB1", orchestrator.ActiveJobID())

	_, err = orchestrator.Run(context.Background(), targetsOf("C2"), "POL1")
	assert.ErrorIs(t, err, ErrBatchInProgress)

	assert.ErrorIs(t, orchestrator.Dismiss("JOB1"), ErrJobRunning)

	close(release)

	select {
	case <-observer.done:
	case <-time.After(2 * time.Second):
		t.Fatal("lote não terminou")
	}

	assert.Eventually(t, func() bool { return orchestrator.ActiveJobID() == "" }, time.Second, 5*time.Millisecond)
	require.NoError(t, orchestrator.Dismiss("JOB1"))

	_, err = orchestrator.Progress("JOB1")
	assert.ErrorIs(t, err, ErrJobNotFound)
	assert.ErrorIs(t, orchestrator.Dismiss("JOB1"), ErrJobNotFound)
}

func TestOrchestrator_AnalyzeSingle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAnalyzer := mocks.NewMockCreativeAnalyzer(ctrl)
	mockCache := mocks.NewMockAuditCache(ctrl)
	mockObserver := mocks.NewMockProgressObserver(ctrl)

	orchestrator := NewOrchestrator(mockAnalyzer, mockCache, mockObserver)

	mockAnalyzer.EXPECT().AnalyzeCreative(gomock.Any(), "C1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, policyID *string) (*domain.Audit, error) {
			require.NotNil(t, policyID)
			assert.Equal(t, "POL1", *policyID)
			return nil, nil
		})
	mockObserver.EXPECT().OnBatchProgress(gomock.Any()).Times(3)

	summary, err := orchestrator.AnalyzeSingle(context.Background(), domain.AnalysisTarget{CreativeID: "C1"}, "POL1")
	require.NoError(t, err)

	// auditoria nula sem erro conta como falha e não toca o cache
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, "C1", summary.FailedItems[0].Name)
}

func TestOrchestrator_Run_ErroNoCacheNaoContaComoFalha(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAnalyzer := mocks.NewMockCreativeAnalyzer(ctrl)
	mockCache := mocks.NewMockAuditCache(ctrl)
	orchestrator := NewOrchestrator(mockAnalyzer, mockCache)

	mockAnalyzer.EXPECT().AnalyzeCreative(gomock.Any(), "C1", gomock.Any()).
		Return(&domain.Audit{ID: "A1", CreativeID: "C1"}, nil)
	mockCache.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("redis indisponível"))

	summary, err := orchestrator.Run(context.Background(), targetsOf("C1"), "POL1")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Succeeded)
	assert.Zero(t, summary.Failed)
}

type observerFunc func(domain.BatchProgress)

func (f observerFunc) OnBatchProgress(p domain.BatchProgress) { f(p) }

func TestOrchestrator_Start_PanicNoMotorViraFalhaDoItem(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAnalyzer := mocks.NewMockCreativeAnalyzer(ctrl)
	observer := newRecordingObserver()
	orchestrator := NewOrchestrator(mockAnalyzer, nil, observer)
	orchestrator.newID = fixedID("JOB1")

	gomock.InOrder(
		mockAnalyzer.EXPECT().AnalyzeCreative(gomock.Any(), "C1", gomock.Any()).
			DoAndReturn(func(context.Context, string, *string) (*domain.Audit, error) {
				panic("resposta inesperada do motor")
			}),
		mockAnalyzer.EXPECT().AnalyzeCreative(gomock.Any(), "C2", gomock.Any()).
			Return(&domain.Audit{ID: "A2", CreativeID: "C2"}, nil),
	)

	_, err := orchestrator.Start(context.Background(), targetsOf("C1", "C2"), "POL1")
	require.NoError(t, err)

	select {
	case <-observer.done:
	case <-time.After(2 * time.Second):
		t.Fatal("lote não terminou")
	}

	final, err := orchestrator.Progress("JOB1")
	require.NoError(t, err)
	assert.True(t, final.Done)
	assert.Equal(t, 1, final.Succeeded)
	assert.Equal(t, 1, final.Failed)
	require.Len(t, final.FailedItems, 1)
	assert.Equal(t, "C1", final.FailedItems[0].CreativeID)
	assert.Contains(t, final.FailedItems[0].Error, "panic")
}

func TestOrchestrator_NovoLoteSoDepoisDoSnapshotFinal(t *testing.T) {
	analyzer := analyzeFunc(func(_ context.Context, creativeID string, _ *string) (*domain.Audit, error) {
		return &domain.Audit{ID: "A-" + creativeID, CreativeID: creativeID}, nil
	})

	var orchestrator *Orchestrator
	var activeDuringFinal string
	var startErr error

	orchestrator = NewOrchestrator(analyzer, nil, observerFunc(func(p domain.BatchProgress) {
		if !p.Done || p.JobID != "JOB1" {
			return
		}
		activeDuringFinal = orchestrator.ActiveJobID()
		_, startErr = orchestrator.Start(context.Background(), targetsOf("C9"), "POL1")
	}))
	orchestrator.newID = fixedID("JOB1")

	_, err := orchestrator.Run(context.Background(), targetsOf("C1"), "POL1")
	require.NoError(t, err)

	assert.Equal(t, "JOB1", activeDuringFinal)
	assert.ErrorIs(t, startErr, ErrBatchInProgress)
	assert.Empty(t, orchestrator.ActiveJobID())
}
