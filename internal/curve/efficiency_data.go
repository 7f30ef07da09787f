package curve

// Reference wind efficiency curves from the dena grid study (mean of 12
// German wind farms) and the Knorr dissertation (mean of over 2000
// farms), plus single-farm curves deviating strongly from the means.
// Efficiency is dimensionless; wind speeds in m/s.
var windEfficiencyCurves = map[string][]Point{
	"dena_mean": {
		{1.0, 1.000}, {2.0, 0.997}, {3.0, 0.985}, {4.0, 0.963},
		{5.0, 0.936}, {6.0, 0.910}, {7.0, 0.890}, {8.0, 0.877},
		{9.0, 0.872}, {10.0, 0.872}, {11.0, 0.877}, {12.0, 0.886},
		{13.0, 0.898}, {14.0, 0.912}, {15.0, 0.926}, {16.0, 0.940},
		{17.0, 0.952}, {18.0, 0.962}, {19.0, 0.970}, {20.0, 0.976},
		{21.0, 0.981}, {22.0, 0.985}, {23.0, 0.988}, {24.0, 0.990},
		{25.0, 0.992},
	},
	"knorr_mean": {
		{1.0, 1.000}, {2.0, 0.996}, {3.0, 0.981}, {4.0, 0.957},
		{5.0, 0.929}, {6.0, 0.903}, {7.0, 0.884}, {8.0, 0.873},
		{9.0, 0.869}, {10.0, 0.871}, {11.0, 0.878}, {12.0, 0.889},
		{13.0, 0.903}, {14.0, 0.919}, {15.0, 0.935}, {16.0, 0.950},
		{17.0, 0.963}, {18.0, 0.973}, {19.0, 0.981}, {20.0, 0.987},
		{21.0, 0.991}, {22.0, 0.994}, {23.0, 0.996}, {24.0, 0.998},
		{25.0, 0.999},
	},
	"dena_extreme1": {
		{1.0, 1.000}, {2.0, 0.994}, {3.0, 0.972}, {4.0, 0.935},
		{5.0, 0.890}, {6.0, 0.847}, {7.0, 0.813}, {8.0, 0.791},
		{9.0, 0.782}, {10.0, 0.784}, {11.0, 0.794}, {12.0, 0.811},
		{13.0, 0.832}, {14.0, 0.856}, {15.0, 0.880}, {16.0, 0.903},
		{17.0, 0.923}, {18.0, 0.940}, {19.0, 0.954}, {20.0, 0.964},
		{21.0, 0.972}, {22.0, 0.978}, {23.0, 0.983}, {24.0, 0.986},
		{25.0, 0.989},
	},
	"dena_extreme2": {
		{1.0, 1.000}, {2.0, 0.999}, {3.0, 0.993}, {4.0, 0.982},
		{5.0, 0.967}, {6.0, 0.952}, {7.0, 0.940}, {8.0, 0.932},
		{9.0, 0.928}, {10.0, 0.929}, {11.0, 0.933}, {12.0, 0.939},
		{13.0, 0.947}, {14.0, 0.956}, {15.0, 0.964}, {16.0, 0.972},
		{17.0, 0.978}, {18.0, 0.983}, {19.0, 0.987}, {20.0, 0.990},
		{21.0, 0.993}, {22.0, 0.995}, {23.0, 0.996}, {24.0, 0.997},
		{25.0, 0.998},
	},
	"knorr_extreme1": {
		{1.0, 1.000}, {2.0, 0.992}, {3.0, 0.965}, {4.0, 0.922},
		{5.0, 0.872}, {6.0, 0.824}, {7.0, 0.788}, {8.0, 0.766},
		{9.0, 0.758}, {10.0, 0.762}, {11.0, 0.775}, {12.0, 0.795},
		{13.0, 0.820}, {14.0, 0.848}, {15.0, 0.876}, {16.0, 0.902},
		{17.0, 0.925}, {18.0, 0.944}, {19.0, 0.958}, {20.0, 0.969},
		{21.0, 0.977}, {22.0, 0.983}, {23.0, 0.987}, {24.0, 0.990},
		{25.0, 0.993},
	},
	"knorr_extreme2": {
		{1.0, 1.000}, {2.0, 0.995}, {3.0, 0.976}, {4.0, 0.946},
		{5.0, 0.911}, {6.0, 0.878}, {7.0, 0.853}, {8.0, 0.838},
		{9.0, 0.832}, {10.0, 0.834}, {11.0, 0.842}, {12.0, 0.856},
		{13.0, 0.873}, {14.0, 0.892}, {15.0, 0.911}, {16.0, 0.929},
		{17.0, 0.945}, {18.0, 0.958}, {19.0, 0.969}, {20.0, 0.977},
		{21.0, 0.983}, {22.0, 0.988}, {23.0, 0.991}, {24.0, 0.994},
		{25.0, 0.996},
	},
	"knorr_extreme3": {
		{1.0, 1.000}, {2.0, 0.998}, {3.0, 0.989}, {4.0, 0.974},
		{5.0, 0.955}, {6.0, 0.936}, {7.0, 0.921}, {8.0, 0.911},
		{9.0, 0.906}, {10.0, 0.907}, {11.0, 0.912}, {12.0, 0.920},
		{13.0, 0.930}, {14.0, 0.941}, {15.0, 0.952}, {16.0, 0.962},
		{17.0, 0.970}, {18.0, 0.977}, {19.0, 0.982}, {20.0, 0.986},
		{21.0, 0.990}, {22.0, 0.992}, {23.0, 0.994}, {24.0, 0.996},
		{25.0, 0.997},
	},
}
