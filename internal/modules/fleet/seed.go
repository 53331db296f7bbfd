// README: Default catalog loaded into a fresh in-memory store.
package fleet

import "context"

var DefaultVehicles = []Vehicle{
	{ID: "vuc-01", Name: "VUC (Veículo Urbano)", Consumption: 6.0, TankLiters: 150, Plate: "ABC-1234", Status: StatusAvailable},
	{ID: "carreta-01", Name: "Carreta LS", Consumption: 2.5, TankLiters: 600, Plate: "GHI-9012", Status: StatusAvailable},
}

var DefaultDrivers = []Driver{
	{ID: "mot-01", Name: "Carlos Silva", License: "1234567890", PhotoURL: "https://ui-avatars.com/api/?name=Carlos+Silva&background=0D8ABC&color=fff", Status: StatusAvailable},
	{ID: "mot-02", Name: "Ana Pereira", License: "0987654321", PhotoURL: "https://ui-avatars.com/api/?name=Ana+Pereira&background=random", Status: StatusAvailable},
}

func Seed(ctx context.Context, repo Repository) error {
	for _, v := range DefaultVehicles {
		if err := repo.CreateVehicle(ctx, v); err != nil {
			return err
		}
	}
	for _, d := range DefaultDrivers {
		if err := repo.CreateDriver(ctx, d); err != nil {
			return err
		}
	}
	return nil
}
