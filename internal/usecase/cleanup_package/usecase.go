package cleanup_package

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PlannerBookingService/internal/domain"
	packageClient "github.com/m04kA/SMC-PlannerBookingService/internal/integrations/packageservice"
)

// UseCase удаляет данные доступности пакета после его мягкого удаления в каталоге.
// Бронирования остаются как история.
type UseCase struct {
	capacityRepo  CapacityRepository
	blackoutRepo  BlackoutRepository
	packageClient PackageServiceClient
	txManager     TransactionManager
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	capacityRepo CapacityRepository,
	blackoutRepo BlackoutRepository,
	packageClient PackageServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		capacityRepo:  capacityRepo,
		blackoutRepo:  blackoutRepo,
		packageClient: packageClient,
		txManager:     txManager,
		logger:        logger,
	}
}

// Execute удаляет емкость по умолчанию, записи на даты и закрытые даты в одной транзакции
func (uc *UseCase) Execute(ctx context.Context, packageID int64) error {
	uc.logger.Info("CleanupPackage: package=%d", packageID)

	if packageID <= 0 {
		return domain.Reject(domain.ErrInvalidInput, "packageId must be positive")
	}

	pkg, err := uc.packageClient.GetPackage(ctx, packageID)
	if err != nil && !errors.Is(err, packageClient.ErrPackageNotFound) {
		uc.logger.Error("CleanupPackage: failed to get package id=%d: %v", packageID, err)
		return fmt.Errorf("%w: failed to get package: %w", ErrInternal, err)
	}
	if pkg.IsBookable() {
		uc.logger.Warn("CleanupPackage: package id=%d is still active", packageID)
		return domain.Reject(domain.ErrInvalidInput, fmt.Sprintf("package %d is still active", packageID))
	}

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.capacityRepo.DeleteByPackage(txCtx, packageID); err != nil {
			return fmt.Errorf("%w: failed to delete capacity: %w", ErrInternal, err)
		}
		if err := uc.blackoutRepo.DeleteByPackage(txCtx, packageID); err != nil {
			return fmt.Errorf("%w: failed to delete blackouts: %w", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Error("CleanupPackage: failed package=%d: %v", packageID, err)
		return err
	}

	uc.logger.Info("CleanupPackage: availability data of package=%d removed", packageID)
	return nil
}
